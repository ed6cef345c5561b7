package domain

import "time"

type SourceKind string

const (
	SourceGenericBoard  SourceKind = "generic-board"
	SourceStructuredATS SourceKind = "structured-ats"
	SourceHTMLATS       SourceKind = "html-ats"
)

// Posting is a single normalized job listing. Adapters produce it; the
// aggregator and scorers only annotate copies (RelevanceScore, DedupKey, Match).
type Posting struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	URL         string     `json:"url"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	SourceID    string     `json:"source_id"`
	SourceKind  SourceKind `json:"source_kind"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	JobLevel    string     `json:"job_level,omitempty"`

	RelevanceScore float64      `json:"relevance_score,omitempty"`
	DedupKey       string       `json:"dedup_key,omitempty"`
	Match          *MatchResult `json:"match,omitempty"`
}

// ResumeProfile is supplied by the résumé parser and consumed read-only.
type ResumeProfile struct {
	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience,omitempty"`
	HighestDegree   string   `json:"highest_degree,omitempty"`
	RawText         string   `json:"raw_text,omitempty"`
}

type MatchResult struct {
	OverallScore    float64  `json:"overall_score"`
	SkillsScore     float64  `json:"skills_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	KeywordsScore   float64  `json:"keywords_score"`
	MatchedSkills   []string `json:"matched_skills"`
}
