package recommend

import (
	"errors"

	"learnrag/internal/media"
)

var (
	ErrTopicRequired  = errors.New("topic is required")
	ErrResumeRequired = errors.New("resume text is required")
	ErrNoProvider     = errors.New("no completion provider configured")
)

// SkillLevel is the learner's self-reported level.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// StarredCourse is a course the learner bookmarked client-side.
type StarredCourse struct {
	ID    string `json:"id"`
	Title string `json:"title" validate:"max=300"`
	Type  string `json:"type"`
}

// Request asks for course recommendations on a topic.
type Request struct {
	Topic          string          `json:"topic" validate:"required,max=200"`
	SkillLevel     SkillLevel      `json:"skillLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
	History        []string        `json:"history" validate:"max=50,dive,max=200"`
	StarredCourses []StarredCourse `json:"starredCourses" validate:"max=50,dive"`
}

// Course is a single AI-suggested course.
type Course struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Instructor    string  `json:"instructor"`
	Level         string  `json:"level"`
	URL           string  `json:"url"`
	Rating        float64 `json:"rating"`
	IsAIGenerated bool    `json:"isAiGenerated"`
}

// Recommendations is the service answer. Courses and Videos are never nil.
type Recommendations struct {
	Videos        []media.Video `json:"youtubeVideos"`
	Courses       []Course      `json:"udemyCourses"`
	Insights      string        `json:"aiInsights"`
	ContextSource string        `json:"contextSource"`
}

// Analysis is a resume review grounded in retrieved context.
type Analysis struct {
	Text          string `json:"analysis"`
	ContextSource string `json:"contextSource"`
}
