package samgov

import "strings"

type Opportunities struct {
	Items []*Opportunity
}

type Opportunity struct {
	NoticeID           string `json:"noticeId,omitempty"`
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	NAICSCode          string `json:"naicsCode,omitempty"`
	FullParentPathName string `json:"fullParentPathName,omitempty"`
	DepartmentName     string `json:"departmentName,omitempty"`
	PostedDate         string `json:"postedDate,omitempty"`
	ResponseDeadline   string `json:"responseDeadLine,omitempty"`
	Type               string `json:"type,omitempty"`
	SolicitationNumber string `json:"solicitationNumber,omitempty"`
	SetAside           string `json:"typeOfSetAsideDescription,omitempty"`
	PlaceOfPerformance struct {
		City struct {
			Name string `json:"name,omitempty"`
		} `json:"city,omitempty"`
		State struct {
			Code string `json:"code,omitempty"`
			Name string `json:"name,omitempty"`
		} `json:"state,omitempty"`
	} `json:"placeOfPerformance,omitempty"`
	UILink string `json:"uiLink,omitempty"`
}

// Agency returns the full parent path name, falling back to the department
// name the way the v2 search API mixes the two fields.
func (o *Opportunity) Agency() string {
	if o.FullParentPathName != "" {
		return o.FullParentPathName
	}
	return o.DepartmentName
}

// Place renders the place of performance as "City, ST". Either part may be missing.
func (o *Opportunity) Place() string {
	parts := make([]string, 0, 2)
	if o.PlaceOfPerformance.City.Name != "" {
		parts = append(parts, o.PlaceOfPerformance.City.Name)
	}
	if o.PlaceOfPerformance.State.Code != "" {
		parts = append(parts, o.PlaceOfPerformance.State.Code)
	}
	return strings.Join(parts, ", ")
}

func (o *Opportunities) Len() int {
	return len(o.Items)
}

func (o *Opportunities) FindByID(id string) *Opportunity {
	for _, opp := range o.Items {
		if opp.NoticeID == id {
			return opp
		}
	}
	return nil
}

// FilterByNAICS returns the subset of opportunities whose NAICS code is in the
// provided list. The receiver is not modified.
func (o *Opportunities) FilterByNAICS(codes []string) *Opportunities {
	lookup := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		lookup[code] = struct{}{}
	}

	filtered := &Opportunities{}
	for _, opp := range o.Items {
		if _, ok := lookup[opp.NAICSCode]; ok {
			filtered.Items = append(filtered.Items, opp)
		}
	}
	return filtered
}

// SlimOpportunity is the reduced payload sent to the scoring engine; it keeps
// prompt sizes bounded regardless of how much metadata the search API returns.
type SlimOpportunity struct {
	NoticeID           string `json:"noticeId"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	NAICSCode          string `json:"naicsCode"`
	Agency             string `json:"agency"`
	PostedDate         string `json:"postedDate"`
	ResponseDeadline   string `json:"responseDeadLine"`
	Type               string `json:"type"`
	SolicitationNumber string `json:"solicitationNumber"`
	SetAside           string `json:"setAside"`
	PlaceOfPerformance string `json:"placeOfPerformance"`
	UILink             string `json:"uiLink"`
}

func (o *Opportunities) Slim() []SlimOpportunity {
	slim := make([]SlimOpportunity, 0, len(o.Items))
	for _, opp := range o.Items {
		slim = append(slim, SlimOpportunity{
			NoticeID:           opp.NoticeID,
			Title:              opp.Title,
			Description:        opp.Description,
			NAICSCode:          opp.NAICSCode,
			Agency:             opp.Agency(),
			PostedDate:         opp.PostedDate,
			ResponseDeadline:   opp.ResponseDeadline,
			Type:               opp.Type,
			SolicitationNumber: opp.SolicitationNumber,
			SetAside:           opp.SetAside,
			PlaceOfPerformance: opp.Place(),
			UILink:             opp.UILink,
		})
	}
	return slim
}
