package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Linkedin string `json:"linkedin"`
	Github   string `json:"github"`
	Website  string `json:"website"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa"`
}

type Project struct {
	Title        string `json:"title"        validate:"required"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
	Date         string `json:"date"`
}

func (p Project) GetTitle() string { return p.Title }

type Course struct {
	Title          string `json:"title"          validate:"required"`
	Provider       string `json:"provider"`
	CompletionDate string `json:"completionDate"`
	Certificate    string `json:"certificate"`
	Description    string `json:"description"`
}

func (c Course) GetTitle() string { return c.Title }

type Achievement struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (a Achievement) GetTitle() string { return a.Title }

type Resume struct {
	BaseUUIDModel
	UserID       string                           `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null" json:"userId"`
	PersonalInfo PersonalInfo                     `gorm:"embedded;embeddedPrefix:personal_"                  json:"personalInfo"`
	Summary      string                           `gorm:"column:summary;type:text"                           json:"summary"`
	Experience   datatypes.JSONSlice[Experience]  `gorm:"column:experience"                                  json:"experience"`
	Education    datatypes.JSONSlice[Education]   `gorm:"column:education"                                   json:"education"`
	Skills       datatypes.JSONSlice[string]      `gorm:"column:skills"                                      json:"skills"`
	Projects     datatypes.JSONSlice[Project]     `gorm:"column:projects"                                    json:"projects"`
	Courses      datatypes.JSONSlice[Course]      `gorm:"column:courses"                                     json:"courses"`
	Achievements datatypes.JSONSlice[Achievement] `gorm:"column:achievements"                                json:"achievements"`
}

func (Resume) TableName() string {
	return "resumes"
}

func EmptyResume(userID string) *Resume {
	resume := &Resume{UserID: userID}
	resume.Normalize()
	return resume
}

// Normalize replaces nil sections with empty ones so JSON columns never hold null.
func (r *Resume) Normalize() {
	if r.Experience == nil {
		r.Experience = datatypes.JSONSlice[Experience]{}
	}
	if r.Education == nil {
		r.Education = datatypes.JSONSlice[Education]{}
	}
	if r.Skills == nil {
		r.Skills = datatypes.JSONSlice[string]{}
	}
	if r.Projects == nil {
		r.Projects = datatypes.JSONSlice[Project]{}
	}
	if r.Courses == nil {
		r.Courses = datatypes.JSONSlice[Course]{}
	}
	if r.Achievements == nil {
		r.Achievements = datatypes.JSONSlice[Achievement]{}
	}
}

func (r *Resume) BeforeSave(tx *gorm.DB) error {
	r.Normalize()
	return r.BaseUUIDModel.BeforeSave(tx)
}

func (r *Resume) AfterFind(tx *gorm.DB) error {
	r.Normalize()
	return nil
}

type SaveResumeRequest struct {
	PersonalInfo *PersonalInfo  `json:"personalInfo"`
	Summary      *string        `json:"summary"`
	Experience   *[]Experience  `json:"experience"`
	Education    *[]Education   `json:"education"`
	Skills       *[]string      `json:"skills"`
	Projects     *[]Project     `json:"projects"     validate:"omitempty,dive"`
	Courses      *[]Course      `json:"courses"      validate:"omitempty,dive"`
	Achievements *[]Achievement `json:"achievements" validate:"omitempty,dive"`
}

type GenerateSummaryRequest struct {
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	Skills       []string      `json:"skills"`
	Projects     []Project     `json:"projects"`
	Courses      []Course      `json:"courses"`
	Achievements []Achievement `json:"achievements"`
	Experience   []Experience  `json:"experience"`
}
