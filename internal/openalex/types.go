// Package openalex provides a client for the OpenAlex API.
//
// OpenAlex is a free, open catalog of scholarly papers, authors, venues,
// institutions, and concepts. This package covers the endpoints the journal
// matcher consumes: works search, works-by-DOI lookup, year grouping,
// concepts search, and institutions search.
//
// API Documentation: https://docs.openalex.org/
package openalex

// WorksResponse represents the top-level response from the works endpoints.
type WorksResponse struct {
	Meta    Meta          `json:"meta"`
	Results []Work        `json:"results"`
	GroupBy []GroupBucket `json:"group_by"`
}

// Meta contains metadata about the results including pagination info.
type Meta struct {
	Count   int `json:"count"`
	DBTime  int `json:"db_response_time_ms"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// GroupBucket is a single group returned by a group_by query.
type GroupBucket struct {
	Key            string `json:"key"`
	KeyDisplayName string `json:"key_display_name"`
	Count          int    `json:"count"`
}

// Work represents an academic work (paper) in OpenAlex.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	DisplayName     string       `json:"display_name"`
	PublicationYear int          `json:"publication_year"`
	PublicationDate string       `json:"publication_date"`
	Type            string       `json:"type"`
	CitedByCount    int          `json:"cited_by_count"`
	PrimaryLocation *Location    `json:"primary_location"`
	Authorships     []Authorship `json:"authorships"`
	Grants          []Grant      `json:"grants"`
	SDGs            []SDG        `json:"sustainable_development_goals"`
}

// Location represents where a work is available.
type Location struct {
	Source *Source `json:"source"`
	PDFURL string  `json:"pdf_url"`
}

// Source represents a publication venue (journal, repository, etc.).
// CitedByCount is the venue's total citation count, used as the impact
// proxy for venue-level quality tiers.
type Source struct {
	ID                   string `json:"id"`
	DisplayName          string `json:"display_name"`
	HostOrganizationName string `json:"host_organization_name"`
	HomepageURL          string `json:"homepage_url"`
	CitedByCount         int    `json:"cited_by_count"`
	Type                 string `json:"type"`
}

// Authorship represents an author's contribution to a work.
type Authorship struct {
	AuthorPosition string        `json:"author_position"`
	Author         AuthorInfo    `json:"author"`
	Institutions   []Institution `json:"institutions"`
}

// AuthorInfo contains basic author information.
type AuthorInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// Institution represents an academic institution.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

// InstitutionsResponse is the response from the institutions endpoint.
type InstitutionsResponse struct {
	Meta    Meta          `json:"meta"`
	Results []Institution `json:"results"`
}

// Grant contains funding information attached to a work.
type Grant struct {
	Funder            string `json:"funder"`
	FunderDisplayName string `json:"funder_display_name"`
	AwardID           string `json:"award_id"`
}

// SDG is a sustainable development goal tag attached to a work.
type SDG struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// Concept represents a research concept in OpenAlex.
type Concept struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"display_name"`
	Level          int     `json:"level"`
	WorksCount     int     `json:"works_count"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ConceptsResponse is the response from the concepts endpoint.
type ConceptsResponse struct {
	Meta    Meta      `json:"meta"`
	Results []Concept `json:"results"`
}
