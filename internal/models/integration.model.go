package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Platform string

const (
	PlatformGitHub   Platform = "GitHub"
	PlatformCoursera Platform = "Coursera"
	PlatformDevfolio Platform = "Devfolio"
	PlatformUdemy    Platform = "Udemy"
	PlatformLinkedIn Platform = "LinkedIn"
)

// SupportedPlatforms lists every platform a record may be stored under.
// Only GitHub, Coursera and Devfolio have adapters.
var SupportedPlatforms = []Platform{
	PlatformCoursera,
	PlatformGitHub,
	PlatformDevfolio,
	PlatformUdemy,
	PlatformLinkedIn,
}

// ParsePlatform matches names case-insensitively.
func ParsePlatform(name string) (Platform, bool) {
	for _, platform := range SupportedPlatforms {
		if strings.EqualFold(string(platform), name) {
			return platform, true
		}
	}
	return "", false
}

type DataType string

const (
	DataTypeCourse        DataType = "course"
	DataTypeProject       DataType = "project"
	DataTypeHackathon     DataType = "hackathon"
	DataTypeCertification DataType = "certification"
	DataTypeAchievement   DataType = "achievement"
)

type IntegrationRecord struct {
	BaseUUIDModel
	UserID         string            `gorm:"column:user_id;type:varchar(64);not null"   json:"userId"         validate:"required,max=64"`
	Platform       Platform          `gorm:"column:platform;type:varchar(32);not null"  json:"platform"       validate:"required,oneof=GitHub Coursera Devfolio Udemy LinkedIn"`
	DataType       DataType          `gorm:"column:data_type;type:varchar(32);not null" json:"dataType"       validate:"required,oneof=course project hackathon certification achievement"`
	Title          string            `gorm:"column:title;type:varchar(300);not null"    json:"title"          validate:"required,max=300"`
	Description    string            `gorm:"column:description;type:text"               json:"description"`
	Date           string            `gorm:"column:date;type:varchar(64)"               json:"date"           validate:"max=64"`
	CertificateURL string            `gorm:"column:certificate_url;type:text"           json:"certificateUrl" validate:"max=2048"`
	Metadata       datatypes.JSONMap `gorm:"column:metadata"                            json:"metadata"`
	SyncedAt       time.Time         `gorm:"column:synced_at;not null"                  json:"syncedAt"`
	IsActive       bool              `gorm:"column:is_active;not null;default:true"     json:"isActive"`
}

func (IntegrationRecord) TableName() string {
	return "integration_records"
}

// Meta returns the typed view over the record's platform payload.
func (r IntegrationRecord) Meta() Metadata {
	return Metadata(r.Metadata)
}

// ResumeFormat is the compact projection used by the grouped integration view.
type ResumeFormat struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Certificate string   `json:"certificate"`
	Platform    Platform `json:"platform"`
}

func (r IntegrationRecord) ToResumeFormat() ResumeFormat {
	return ResumeFormat{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Certificate: r.CertificateURL,
		Platform:    r.Platform,
	}
}

type GroupedIntegrations struct {
	Courses        []ResumeFormat `json:"courses"`
	Projects       []ResumeFormat `json:"projects"`
	Hackathons     []ResumeFormat `json:"hackathons"`
	Certifications []ResumeFormat `json:"certifications"`
	Achievements   []ResumeFormat `json:"achievements"`
}

func NewGroupedIntegrations() GroupedIntegrations {
	return GroupedIntegrations{
		Courses:        []ResumeFormat{},
		Projects:       []ResumeFormat{},
		Hackathons:     []ResumeFormat{},
		Certifications: []ResumeFormat{},
		Achievements:   []ResumeFormat{},
	}
}

type PlatformStats struct {
	Platform Platform  `json:"platform"`
	Count    int       `json:"count"`
	LastSync time.Time `json:"lastSync"`
}

type RecordError struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

type UpsertResult struct {
	Saved  []IntegrationRecord `json:"saved"`
	Errors []RecordError       `json:"errors"`
}
