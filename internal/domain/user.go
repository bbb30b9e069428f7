package domain

// User is the hydrated form of a user. Cart is the user's unsent order;
// at most one exists per user, nil when the user has none.
type User struct {
	ID           string        `json:"id,omitempty"`
	Rev          string        `json:"rev,omitempty"`
	FName        string        `json:"fname,omitempty"`
	LName        string        `json:"lname,omitempty"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Addr         string        `json:"addr,omitempty"`
	Addr2        string        `json:"addr2,omitempty"`
	Orders       []Ref[Order]  `json:"orders"`
	Cart         *Ref[Order]   `json:"cart"`
	SavedDesigns []Ref[Design] `json:"savedDesigns"`
}

func (u *User) DocID() string { return u.ID }

func (u *User) Stamp(id, rev string) {
	if id != "" {
		u.ID = id
	}
	u.Rev = rev
}

// StoredUser is the storage form of a User: linked collections are id
// arrays and the cart is a nullable id.
type StoredUser struct {
	ID           string   `dynamodbav:"_id,omitempty"`
	Rev          string   `dynamodbav:"_rev,omitempty"`
	FName        string   `dynamodbav:"fname,omitempty"`
	LName        string   `dynamodbav:"lname,omitempty"`
	Email        string   `dynamodbav:"email,omitempty"`
	Phone        string   `dynamodbav:"phone,omitempty"`
	Addr         string   `dynamodbav:"addr,omitempty"`
	Addr2        string   `dynamodbav:"addr2,omitempty"`
	Orders       []string `dynamodbav:"orders"`
	Cart         *string  `dynamodbav:"cart"`
	SavedDesigns []string `dynamodbav:"savedDesigns"`
}

// User converts the stored form back to the hydrated shape with id
// references for all linked fields.
func (s *StoredUser) User() *User {
	u := &User{
		ID:    s.ID,
		Rev:   s.Rev,
		FName: s.FName,
		LName: s.LName,
		Email: s.Email,
		Phone: s.Phone,
		Addr:  s.Addr,
		Addr2: s.Addr2,
	}
	u.Orders = make([]Ref[Order], 0, len(s.Orders))
	for _, id := range s.Orders {
		u.Orders = append(u.Orders, IDRef[Order](id))
	}
	u.SavedDesigns = make([]Ref[Design], 0, len(s.SavedDesigns))
	for _, id := range s.SavedDesigns {
		u.SavedDesigns = append(u.SavedDesigns, IDRef[Design](id))
	}
	if s.Cart != nil {
		ref := IDRef[Order](*s.Cart)
		u.Cart = &ref
	}
	return u
}
