package domain

// AuthPayload is the claim set of a team bearer token
type AuthPayload struct {
	Team       string   `json:"team"`
	Subject    string   `json:"sub"`
	Permission []string `json:"permission"`
}
