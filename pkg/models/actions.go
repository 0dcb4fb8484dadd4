package models

// NavigateBody asks the browser to load a URL
type NavigateBody struct {
	URL   string            `json:"url"`
	Wait  Opt[WaitStrategy] `json:"wait,omitzero"`
	Extra Extra             `json:"-"`
}

func (b NavigateBody) MarshalJSON() ([]byte, error) {
	type plain NavigateBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *NavigateBody) UnmarshalJSON(data []byte) error {
	type plain NavigateBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

type NavigateResponse struct {
	Success Opt[bool]   `json:"success,omitzero"`
	Action  Opt[string] `json:"action,omitzero"`
	URL     Opt[string] `json:"url,omitzero"`
	Title   Opt[string] `json:"title,omitzero"`
	Extra   Extra       `json:"-"`
}

func (r NavigateResponse) MarshalJSON() ([]byte, error) {
	type plain NavigateResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *NavigateResponse) UnmarshalJSON(data []byte) error {
	type plain NavigateResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// ClickBody clicks the element matched by Selector.
// Selector may be CSS, XPath or a natural-language description.
type ClickBody struct {
	Selector string            `json:"selector"`
	Wait     Opt[WaitStrategy] `json:"wait,omitzero"`
	Extra    Extra             `json:"-"`
}

func (b ClickBody) MarshalJSON() ([]byte, error) {
	type plain ClickBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *ClickBody) UnmarshalJSON(data []byte) error {
	type plain ClickBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

type ClickResponse struct {
	Success  Opt[bool]   `json:"success,omitzero"`
	Action   Opt[string] `json:"action,omitzero"`
	Selector Opt[string] `json:"selector,omitzero"`
	Extra    Extra       `json:"-"`
}

func (r ClickResponse) MarshalJSON() ([]byte, error) {
	type plain ClickResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *ClickResponse) UnmarshalJSON(data []byte) error {
	type plain ClickResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// TypeTextBody types Text into the element matched by Selector.
// Delay is the pause between keystrokes in milliseconds.
type TypeTextBody struct {
	Selector string   `json:"selector"`
	Text     string   `json:"text"`
	Delay    Opt[int] `json:"delay,omitzero"`
	Extra    Extra    `json:"-"`
}

func (b TypeTextBody) MarshalJSON() ([]byte, error) {
	type plain TypeTextBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *TypeTextBody) UnmarshalJSON(data []byte) error {
	type plain TypeTextBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

type TypeTextResponse struct {
	Success  Opt[bool]   `json:"success,omitzero"`
	Action   Opt[string] `json:"action,omitzero"`
	Selector Opt[string] `json:"selector,omitzero"`
	Text     Opt[string] `json:"text,omitzero"`
	Extra    Extra       `json:"-"`
}

func (r TypeTextResponse) MarshalJSON() ([]byte, error) {
	type plain TypeTextResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *TypeTextResponse) UnmarshalJSON(data []byte) error {
	type plain TypeTextResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

// PressKeyBody presses Key (e.g. "Enter", "Tab") on the element matched by Selector
type PressKeyBody struct {
	Selector string            `json:"selector"`
	Key      string            `json:"key"`
	Wait     Opt[WaitStrategy] `json:"wait,omitzero"`
	Extra    Extra             `json:"-"`
}

func (b PressKeyBody) MarshalJSON() ([]byte, error) {
	type plain PressKeyBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *PressKeyBody) UnmarshalJSON(data []byte) error {
	type plain PressKeyBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

type PressKeyResponse struct {
	Success  Opt[bool]   `json:"success,omitzero"`
	Action   Opt[string] `json:"action,omitzero"`
	Selector Opt[string] `json:"selector,omitzero"`
	Key      Opt[string] `json:"key,omitzero"`
	Extra    Extra       `json:"-"`
}

func (r PressKeyResponse) MarshalJSON() ([]byte, error) {
	type plain PressKeyResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *PressKeyResponse) UnmarshalJSON(data []byte) error {
	type plain PressKeyResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}

type DragAndDropBody struct {
	SourceSelector string `json:"source_selector"`
	TargetSelector string `json:"target_selector"`
	Extra          Extra  `json:"-"`
}

func (b DragAndDropBody) MarshalJSON() ([]byte, error) {
	type plain DragAndDropBody
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *DragAndDropBody) UnmarshalJSON(data []byte) error {
	type plain DragAndDropBody
	return unmarshalWithExtra(data, (*plain)(b), &b.Extra)
}

type DragAndDropResponse struct {
	Success        Opt[bool]   `json:"success,omitzero"`
	Action         Opt[string] `json:"action,omitzero"`
	SourceSelector Opt[string] `json:"source_selector,omitzero"`
	TargetSelector Opt[string] `json:"target_selector,omitzero"`
	Extra          Extra       `json:"-"`
}

func (r DragAndDropResponse) MarshalJSON() ([]byte, error) {
	type plain DragAndDropResponse
	return marshalWithExtra(plain(r), r.Extra)
}

func (r *DragAndDropResponse) UnmarshalJSON(data []byte) error {
	type plain DragAndDropResponse
	return unmarshalWithExtra(data, (*plain)(r), &r.Extra)
}
