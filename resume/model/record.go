package model

// ExtractedRecord is the structured résumé reconstructed from an uploaded file.
// Every collection is non-nil once the record has been through Normalize, so the
// JSON form always carries arrays rather than null.
type ExtractedRecord struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary,omitempty"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         []string          `json:"skills"`
	Projects       []Project         `json:"projects"`
	Certifications []Certification   `json:"certifications"`
	Achievements   []Achievement     `json:"achievements"`
	Languages      []Language        `json:"languages"`
}

// PersonalInfo holds contact details. Unset fields are empty strings.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExperienceEntry is one work-history block. Dates are literal substrings from
// the source document, or empty when none were found.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// EducationEntry is one education block.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// Project is filled in by the user in the form; extraction leaves it empty.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

// Certification is filled in by the user in the form.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Achievement is filled in by the user in the form.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Language is filled in by the user in the form.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// EmptyRecord returns a well-formed record with nothing extracted.
func EmptyRecord() ExtractedRecord {
	return ExtractedRecord{}.Normalize()
}

// Normalize replaces nil collections with empty ones.
func (r ExtractedRecord) Normalize() ExtractedRecord {
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.Achievements == nil {
		r.Achievements = []Achievement{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	return r
}

// IsEmpty reports whether no field at all was extracted.
func (r ExtractedRecord) IsEmpty() bool {
	return r.PersonalInfo == (PersonalInfo{}) &&
		r.Summary == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0
}
