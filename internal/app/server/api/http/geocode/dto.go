package geocode

import "blogcanvas/internal/domain/geocode"

type searchInput struct {
	Query string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Free-form place name"`
	Limit int    `query:"limit" minimum:"0" maximum:"10" doc:"Number of places to return, 5 when omitted"`
}

type searchResponse struct {
	Places []geocode.Place `json:"places"`
}

type searchOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         searchResponse
}
