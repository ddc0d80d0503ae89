package picsum

import "encoding/json"

// ImageDTO is one element of a listing response, e.g.
//
//	{"id":"0","author":"Alejandro Escamilla","width":5000,"height":3333,
//	 "url":"https://unsplash.com/...","download_url":"https://picsum.photos/id/0/5000/3333"}
//
// ID is kept raw because some listing servers send it as a number.
type ImageDTO struct {
	ID          json.RawMessage `json:"id"`
	Author      string          `json:"author,omitempty"`
	Width       int             `json:"width,omitempty"`
	Height      int             `json:"height,omitempty"`
	URL         string          `json:"url,omitempty"`
	DownloadURL string          `json:"download_url"`
}
