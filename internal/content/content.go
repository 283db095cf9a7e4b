// Package content serves the read-only public site data: videos,
// publications and the student list, loaded from JSON files at startup.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Video is one entry on the videos page.
type Video struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Publication is one entry on the publications page.
type Publication struct {
	Category string `json:"category"`
	Thumb    string `json:"thumb"`
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Link     string `json:"link"`
	Poster   string `json:"poster"`
}

// Student is one entry on the students page.
type Student struct {
	MemberName  string `json:"memberName"`
	MemberImage string `json:"memberImage"`
	MemberURL   string `json:"memberURL"`
	MemberDesc  string `json:"memberDesc"`
}

// Library holds all public site data.
type Library struct {
	Videos       []Video       `json:"videos"`
	Publications []Publication `json:"publications"`
	Students     []Student     `json:"students"`
}

// Load reads videos.json, publications.json and students.json from dir.
// Missing files leave the corresponding list empty.
func Load(dir string) (*Library, error) {
	var videos struct {
		Videos []Video `json:"videos"`
	}
	if err := loadFile(filepath.Join(dir, "videos.json"), &videos); err != nil {
		return nil, err
	}

	var publications struct {
		Publications []Publication `json:"publications"`
	}
	if err := loadFile(filepath.Join(dir, "publications.json"), &publications); err != nil {
		return nil, err
	}

	var students struct {
		Students []Student `json:"students"`
	}
	if err := loadFile(filepath.Join(dir, "students.json"), &students); err != nil {
		return nil, err
	}

	return &Library{
		Videos:       videos.Videos,
		Publications: publications.Publications,
		Students:     students.Students,
	}, nil
}

func loadFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
