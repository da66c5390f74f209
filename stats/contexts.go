package stats

// NullContext counts null observations at a position.
type NullContext struct {
	Count Counter `json:"count"`
}

func (c *NullContext) Observe() { c.Count.Observe() }

func (c *NullContext) Coalesce(other *NullContext) {
	if other != nil {
		c.Count.Coalesce(other.Count)
	}
}

// BooleanContext counts boolean observations split by value.
type BooleanContext struct {
	Count  Counter `json:"count"`
	Trues  Counter `json:"trues,omitempty"`
	Falses Counter `json:"falses,omitempty"`
}

func (c *BooleanContext) Observe(v bool) {
	c.Count.Observe()
	if v {
		c.Trues.Observe()
	} else {
		c.Falses.Observe()
	}
}

func (c *BooleanContext) Coalesce(other *BooleanContext) {
	if other == nil {
		return
	}
	c.Count.Coalesce(other.Count)
	c.Trues.Coalesce(other.Trues)
	c.Falses.Coalesce(other.Falses)
}

// BytesContext accumulates statistics for raw-byte leaves.
type BytesContext struct {
	Count  Counter     `json:"count"`
	Length MinMax[int] `json:"length"`
}

func (c *BytesContext) Observe(v []byte) {
	c.Count.Observe()
	c.Length.Observe(len(v))
}

func (c *BytesContext) Coalesce(other *BytesContext) {
	if other == nil {
		return
	}
	c.Count.Coalesce(other.Count)
	c.Length.Coalesce(other.Length)
}

// SequenceContext accumulates statistics for sequence nodes: how many
// sequences were observed and the range of their lengths.
type SequenceContext struct {
	Count  Counter     `json:"count"`
	Length MinMax[int] `json:"length"`
}

func (c *SequenceContext) Observe(length int) {
	c.Count.Observe()
	c.Length.Observe(length)
}

func (c *SequenceContext) Coalesce(other *SequenceContext) {
	if other == nil {
		return
	}
	c.Count.Coalesce(other.Count)
	c.Length.Coalesce(other.Length)
}

// StructContext counts how many records were folded into a struct node.
// Field presence accounting hangs off this count.
type StructContext struct {
	Count Counter `json:"count"`
}

func (c *StructContext) Observe() { c.Count.Observe() }

func (c *StructContext) Coalesce(other *StructContext) {
	if other != nil {
		c.Count.Coalesce(other.Count)
	}
}
