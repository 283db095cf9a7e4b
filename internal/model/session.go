package model

import (
	"regexp"
	"strings"
	"time"
)

var (
	dateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`)
	yearRe = regexp.MustCompile(`^\d{4}-\d{4}$`)
)

// Presenter is a named participant with a reference link for a session.
type Presenter struct {
	Name string `json:"name" bson:"name"`
	Link string `json:"link" bson:"link"`
}

// PRGSession is one paper-reading-group meeting entry.
type PRGSession struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"`
	PaperTitle   string      `json:"paperTitle"`
	PaperLink    string      `json:"paperLink"`
	SlidesLink   string      `json:"slidesLink,omitempty"`
	Resources    string      `json:"resources,omitempty"`
	Presenter    []Presenter `json:"presenter"`
	AcademicYear string      `json:"academicYear"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// SessionSummary is the public view of a session, without the store
// identifier and timestamps.
type SessionSummary struct {
	Date       string      `json:"date"`
	PaperTitle string      `json:"paperTitle"`
	PaperLink  string      `json:"paperLink"`
	SlidesLink string      `json:"slidesLink,omitempty"`
	Resources  string      `json:"resources,omitempty"`
	Presenter  []Presenter `json:"presenter"`
}

// Summary strips the identifier and timestamps from a session.
func (s *PRGSession) Summary() SessionSummary {
	return SessionSummary{
		Date:       s.Date,
		PaperTitle: s.PaperTitle,
		PaperLink:  s.PaperLink,
		SlidesLink: s.SlidesLink,
		Resources:  s.Resources,
		Presenter:  s.Presenter,
	}
}

// SessionInput is the candidate record for create and update.
type SessionInput struct {
	Date         string      `json:"date"`
	PaperTitle   string      `json:"paperTitle"`
	PaperLink    string      `json:"paperLink"`
	SlidesLink   string      `json:"slidesLink,omitempty"`
	Resources    string      `json:"resources,omitempty"`
	Presenter    []Presenter `json:"presenter"`
	AcademicYear string      `json:"academicYear"`
}

// ValidationError collects every violated field constraint of an input.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Details, "; ")
}

// Validate trims all string fields in place and checks the write-time
// constraints, returning a ValidationError listing every violation.
func (in *SessionInput) Validate() error {
	in.Date = strings.TrimSpace(in.Date)
	in.PaperTitle = strings.TrimSpace(in.PaperTitle)
	in.PaperLink = strings.TrimSpace(in.PaperLink)
	in.SlidesLink = strings.TrimSpace(in.SlidesLink)
	in.Resources = strings.TrimSpace(in.Resources)
	in.AcademicYear = strings.TrimSpace(in.AcademicYear)

	var details []string
	if !dateRe.MatchString(in.Date) {
		details = append(details, "Date must be in DD-MM-YY format")
	}
	if in.PaperTitle == "" {
		details = append(details, "Paper title is required")
	}
	if in.PaperLink == "" {
		details = append(details, "Paper link is required")
	}
	if len(in.Presenter) == 0 {
		details = append(details, "At least one presenter is required")
	}
	for i := range in.Presenter {
		in.Presenter[i].Name = strings.TrimSpace(in.Presenter[i].Name)
		in.Presenter[i].Link = strings.TrimSpace(in.Presenter[i].Link)
		if in.Presenter[i].Name == "" {
			details = append(details, "Presenter name cannot be empty")
		}
		if in.Presenter[i].Link == "" {
			details = append(details, "Presenter link cannot be empty")
		}
	}
	if !yearRe.MatchString(in.AcademicYear) {
		details = append(details, "Academic year must be in YYYY-YYYY format")
	}

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}
