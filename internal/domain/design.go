package domain

// Part is one configured component of a design: which option was picked
// for a frame part, and the price that selection carries.
type Part struct {
	PartID    int     `json:"partID" dynamodbav:"partID"`
	OptionID  int     `json:"optionID" dynamodbav:"optionID"`
	ColorID   int     `json:"colorID,omitempty" dynamodbav:"colorID,omitempty"`
	SizeIndex int     `json:"sizeIndex,omitempty" dynamodbav:"sizeIndex,omitempty"`
	Price     float64 `json:"price" dynamodbav:"price"`
}

// Measure is a fit measurement selection on a design.
type Measure struct {
	MeasureID          int `json:"measureID" dynamodbav:"measureID"`
	MeasureOptionIndex int `json:"measureOptionIndex" dynamodbav:"measureOptionIndex"`
}

// Design is a configured wheelchair. ID and Rev are empty until the design
// is first persisted; Rev is refreshed by every write.
type Design struct {
	ID        string    `json:"id,omitempty" dynamodbav:"_id,omitempty"`
	Rev       string    `json:"rev,omitempty" dynamodbav:"_rev,omitempty"`
	Creator   string    `json:"creator,omitempty" dynamodbav:"creator,omitempty"`
	FrameID   int       `json:"frameID" dynamodbav:"frameID"`
	Title     string    `json:"title,omitempty" dynamodbav:"title,omitempty"`
	Parts     []Part    `json:"parts" dynamodbav:"parts"`
	Measures  []Measure `json:"measures,omitempty" dynamodbav:"measures,omitempty"`
	CalcPrice float64   `json:"calcPrice,omitempty" dynamodbav:"calcPrice,omitempty"`
}

func (d *Design) DocID() string { return d.ID }

func (d *Design) Stamp(id, rev string) {
	if id != "" {
		d.ID = id
	}
	d.Rev = rev
}
