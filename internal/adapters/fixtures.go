package adapters

import (
	"context"
	"maps"

	"resumehub/internal/models"
)

// FixtureAdapter serves built-in sample records and ignores the credential.
type FixtureAdapter struct {
	platform models.Platform
	records  []models.IntegrationRecord
}

func NewFixtureAdapter(platform models.Platform) *FixtureAdapter {
	return &FixtureAdapter{
		platform: platform,
		records:  fixtureRecords[platform],
	}
}

func (a *FixtureAdapter) Platform() models.Platform {
	return a.platform
}

func (a *FixtureAdapter) Fetch(ctx context.Context, credential string) ([]models.IntegrationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]models.IntegrationRecord, len(a.records))
	for i, record := range a.records {
		record.Metadata = maps.Clone(record.Metadata)
		records[i] = record
	}
	return records, nil
}

var fixtureRecords = map[models.Platform][]models.IntegrationRecord{
	models.PlatformCoursera: {
		{
			Platform:       models.PlatformCoursera,
			DataType:       models.DataTypeCourse,
			Title:          "AI for Everyone",
			Description:    "Completed with distinction. Learned fundamentals of AI, machine learning, and deep learning.",
			Date:           "2025-01-12",
			CertificateURL: "https://www.coursera.org/account/accomplishments/certificate/ABC123XYZ",
			Metadata: map[string]any{
				"instructor": "Andrew Ng",
				"duration":   "4 weeks",
				"grade":      "98%",
			},
		},
		{
			Platform:       models.PlatformCoursera,
			DataType:       models.DataTypeCourse,
			Title:          "Machine Learning Specialization",
			Description:    "Advanced machine learning course covering supervised and unsupervised learning algorithms.",
			Date:           "2024-11-20",
			CertificateURL: "https://www.coursera.org/account/accomplishments/specialization/DEF456ABC",
			Metadata: map[string]any{
				"instructor": "Andrew Ng",
				"duration":   "3 months",
				"grade":      "95%",
			},
		},
		{
			Platform:       models.PlatformCoursera,
			DataType:       models.DataTypeCertification,
			Title:          "Google Cloud Professional Data Engineer",
			Description:    "Professional certification for data engineering on Google Cloud Platform.",
			Date:           "2024-09-15",
			CertificateURL: "https://www.coursera.org/account/accomplishments/professional-cert/GHI789JKL",
			Metadata: map[string]any{
				"provider":   "Google Cloud",
				"validUntil": "2027-09-15",
			},
		},
	},
	models.PlatformGitHub: {
		{
			Platform:       models.PlatformGitHub,
			DataType:       models.DataTypeProject,
			Title:          "AI Resume Builder",
			Description:    "Full-stack application for creating AI-powered resumes with real-time preview. Features include JWT authentication, document storage, and responsive styling.",
			Date:           "2025-01-05",
			CertificateURL: "https://github.com/username/ai-resume-builder",
			Metadata: map[string]any{
				"stars":    127,
				"forks":    34,
				"language": "JavaScript",
				"topics":   []string{"react", "nodejs", "mongodb", "ai", "resume"},
			},
		},
		{
			Platform:       models.PlatformGitHub,
			DataType:       models.DataTypeProject,
			Title:          "E-commerce Microservices",
			Description:    "Scalable e-commerce platform built with microservices architecture. Includes payment gateway integration, inventory management, and real-time notifications.",
			Date:           "2024-12-15",
			CertificateURL: "https://github.com/username/ecommerce-microservices",
			Metadata: map[string]any{
				"stars":    89,
				"forks":    23,
				"language": "TypeScript",
				"topics":   []string{"microservices", "docker", "kubernetes", "ecommerce"},
			},
		},
		{
			Platform:       models.PlatformGitHub,
			DataType:       models.DataTypeAchievement,
			Title:          "Open Source Contributor",
			Description:    "Contributed to 15+ open source projects. Total 50+ merged pull requests.",
			Date:           "2024-10-01",
			CertificateURL: "https://github.com/username",
			Metadata: map[string]any{
				"contributions": 234,
				"pullRequests":  52,
				"repositories":  15,
			},
		},
	},
	models.PlatformDevfolio: {
		{
			Platform:       models.PlatformDevfolio,
			DataType:       models.DataTypeHackathon,
			Title:          "Smart India Hackathon 2024 - Winner",
			Description:    "Built an AI-based resume matching system that connects job seekers with employers. Won first place among 500+ teams nationwide.",
			Date:           "2024-11-20",
			CertificateURL: "https://devfolio.co/submissions/ai-resume-matcher",
			Metadata: map[string]any{
				"position":     "1st Place",
				"prizeAmount":  "₹1,00,000",
				"teamSize":     4,
				"technologies": []string{"React", "Python", "TensorFlow", "MongoDB"},
			},
		},
		{
			Platform:       models.PlatformDevfolio,
			DataType:       models.DataTypeHackathon,
			Title:          "ETHIndia 2024 - Finalist",
			Description:    "Developed a decentralized credential verification system using blockchain. Reached top 10 finalists out of 1000+ participants.",
			Date:           "2024-09-30",
			CertificateURL: "https://devfolio.co/submissions/decred-verify",
			Metadata: map[string]any{
				"position":     "Top 10 Finalist",
				"technologies": []string{"Solidity", "Web3.js", "React", "IPFS"},
			},
		},
		{
			Platform:       models.PlatformDevfolio,
			DataType:       models.DataTypeProject,
			Title:          "HealthChain - Medical Records on Blockchain",
			Description:    "Blockchain-based medical records management system ensuring privacy and security. Featured project on Devfolio.",
			Date:           "2024-08-15",
			CertificateURL: "https://devfolio.co/projects/healthchain",
			Metadata: map[string]any{
				"likes":        156,
				"views":        2340,
				"technologies": []string{"Ethereum", "React", "Node.js", "MongoDB"},
			},
		},
	},
}
