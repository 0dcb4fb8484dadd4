package models

import "encoding/json"

// ScreenshotBody captures the viewport, or the whole page with FullPage.
// Delay is in seconds.
type ScreenshotBody struct {
	FullPage Opt[bool]    `json:"full_page,omitzero"`
	Delay    Opt[float64] `json:"delay,omitzero"`
	Extra    Extra        `json:"-"`
}

func (b ScreenshotBody) MarshalJSON() ([]byte, error) {
	type plain ScreenshotBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *ScreenshotBody) UnmarshalJSON(data []byte) error {
	type plain ScreenshotBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

// ScreenshotResponse carries the base64-encoded image in Data
type ScreenshotResponse struct {
	Success Opt[bool]   `json:"success,omitzero"`
	Action  Opt[string] `json:"action,omitzero"`
	Data    Opt[string] `json:"data,omitzero"`
	Extra   Extra       `json:"-"`
}

func (r ScreenshotResponse) MarshalJSON() ([]byte, error) {
	type plain ScreenshotResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *ScreenshotResponse) UnmarshalJSON(data []byte) error {
	type plain ScreenshotResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

type ScrapePageBody struct {
	Selector    Opt[string]         `json:"selector,omitzero"`
	IncludeHTML Opt[bool]           `json:"include_html,omitzero"`
	Format      Opt[[]ScrapeFormat] `json:"format,omitzero"`
	Screenshot  Opt[bool]           `json:"screenshot,omitzero"`
	Extra       Extra               `json:"-"`
}

func (b ScrapePageBody) MarshalJSON() ([]byte, error) {
	type plain ScrapePageBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *ScrapePageBody) UnmarshalJSON(data []byte) error {
	type plain ScrapePageBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

// ScrapePageData holds one entry per requested format.
// JSON is free-form and kept raw.
type ScrapePageData struct {
	HTML       Opt[string]          `json:"html,omitzero"`
	Text       Opt[string]          `json:"text,omitzero"`
	JSON       Opt[json.RawMessage] `json:"json,omitzero"`
	Screenshot Opt[string]          `json:"screenshot,omitzero"`
	Extra      Extra                `json:"-"`
}

func (d ScrapePageData) MarshalJSON() ([]byte, error) {
	type plain ScrapePageData
	return marshalWithExtra(plain(d), d.Extra)
}

func (d *ScrapePageData) UnmarshalJSON(data []byte) error {
	type plain ScrapePageData
	return unmarshalWithExtra(data, (*plain)(d), &d.Extra)
}

type ScrapePageResponse struct {
	Success Opt[bool]           `json:"success,omitzero"`
	Action  Opt[string]         `json:"action,omitzero"`
	Data    Opt[ScrapePageData] `json:"data,omitzero"`
	Extra   Extra               `json:"-"`
}

func (r ScrapePageResponse) MarshalJSON() ([]byte, error) {
	type plain ScrapePageResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *ScrapePageResponse) UnmarshalJSON(data []byte) error {
	type plain ScrapePageResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// ScrapeInformationBody describes, in plain language, what to extract
type ScrapeInformationBody struct {
	Description   string             `json:"description"`
	LevelOfDetail Opt[LevelOfDetail] `json:"level_of_detail,omitzero"`
	Extra         Extra              `json:"-"`
}

func (b ScrapeInformationBody) MarshalJSON() ([]byte, error) {
	type plain ScrapeInformationBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *ScrapeInformationBody) UnmarshalJSON(data []byte) error {
	type plain ScrapeInformationBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

// ScrapeInformationData has no fixed shape; every key lands in Extra.
type ScrapeInformationData struct {
	Extra Extra `json:"-"`
}

func (d ScrapeInformationData) MarshalJSON() ([]byte, error) {
	type plain ScrapeInformationData
	return marshalWithExtra(plain(d), d.Extra)
}

func (d *ScrapeInformationData) UnmarshalJSON(data []byte) error {
	type plain ScrapeInformationData
	return unmarshalWithExtra(data, (*plain)(d), &d.Extra)
}

type ScrapeInformationResponse struct {
	Success     Opt[bool]                  `json:"success,omitzero"`
	Action      Opt[string]                `json:"action,omitzero"`
	Description Opt[string]                `json:"description,omitzero"`
	Data        Opt[ScrapeInformationData] `json:"data,omitzero"`
	Extra       Extra                      `json:"-"`
}

func (r ScrapeInformationResponse) MarshalJSON() ([]byte, error) {
	type plain ScrapeInformationResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *ScrapeInformationResponse) UnmarshalJSON(data []byte) error {
	type plain ScrapeInformationResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// GeneratePDFBody renders the current page to PDF after Delay seconds
type GeneratePDFBody struct {
	Delay     Opt[float64] `json:"delay,omitzero"`
	Landscape Opt[bool]    `json:"landscape,omitzero"`
	Extra     Extra        `json:"-"`
}

func (b GeneratePDFBody) MarshalJSON() ([]byte, error) {
	type plain GeneratePDFBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *GeneratePDFBody) UnmarshalJSON(data []byte) error {
	type plain GeneratePDFBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

// GeneratePDFResponse carries the base64-encoded document in Data
type GeneratePDFResponse struct {
	Success Opt[bool]   `json:"success,omitzero"`
	Action  Opt[string] `json:"action,omitzero"`
	Data    Opt[string] `json:"data,omitzero"`
	Extra   Extra       `json:"-"`
}

func (r GeneratePDFResponse) MarshalJSON() ([]byte, error) {
	type plain GeneratePDFResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *GeneratePDFResponse) UnmarshalJSON(data []byte) error {
	type plain GeneratePDFResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}
