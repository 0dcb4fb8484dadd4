package models

// Cookie is a browser cookie visible to the session
type Cookie struct {
	Name   string      `json:"name"`
	Value  string      `json:"value"`
	Domain Opt[string] `json:"domain,omitzero"`
	Path   Opt[string] `json:"path,omitzero"`
	Extra  Extra       `json:"-"`
}

func (c Cookie) MarshalJSON() ([]byte, error) {
	type plain Cookie
	return marshalWithExtra(plain(c), c.Extra)
}

func (c *Cookie) UnmarshalJSON(data []byte) error {
	type plain Cookie
	return unmarshalWithExtra(data, (*plain)(c), &c.Extra)
}

// BrowserContext represents the persistent browser state of a session
type BrowserContext struct {
	URL          Opt[string]            `json:"url,omitzero"`
	Title        Opt[string]            `json:"title,omitzero"`
	UserAgent    Opt[string]            `json:"user_agent,omitzero"`
	Viewport     Opt[Viewport]          `json:"viewport,omitzero"`
	Cookies      Opt[[]Cookie]          `json:"cookies,omitzero"`
	LocalStorage Opt[map[string]string] `json:"local_storage,omitzero"`
	Extra        Extra                  `json:"-"`
}

func (c BrowserContext) MarshalJSON() ([]byte, error) {
	type plain BrowserContext
	return marshalWithExtra(plain(c), c.Extra)
}

func (c *BrowserContext) UnmarshalJSON(data []byte) error {
	type plain BrowserContext
	return unmarshalWithExtra(data, (*plain)(c), &c.Extra)
}

// BrowserContextResponse wraps the context of one session
type BrowserContextResponse struct {
	Success Opt[bool]           `json:"success,omitzero"`
	Context Opt[BrowserContext] `json:"context,omitzero"`
	Extra   Extra               `json:"-"`
}

func (r BrowserContextResponse) MarshalJSON() ([]byte, error) {
	type plain BrowserContextResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *BrowserContextResponse) UnmarshalJSON(data []byte) error {
	type plain BrowserContextResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}
