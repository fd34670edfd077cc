package models

type ContactType string

const (
	ContactTypeEmail   ContactType = "email"
	ContactTypePhone   ContactType = "phone"
	ContactTypeMobile  ContactType = "mobile"
	ContactTypeFax     ContactType = "fax"
	ContactTypeWebsite ContactType = "website"
)

func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeEmail, ContactTypePhone, ContactTypeMobile, ContactTypeFax, ContactTypeWebsite:
		return true
	}
	return false
}

// Contact is one way of reaching a customer.
type Contact struct {
	ID         string      `bson:"_id" json:"id"`
	CustomerID string      `bson:"customerId" json:"customerId"`
	Type       ContactType `bson:"type" json:"type"`
	Value      string      `bson:"value" json:"value"`
	Label      string      `bson:"label,omitempty" json:"label,omitempty"`
	IsPrimary  bool        `bson:"isPrimary" json:"isPrimary"`
	Timestamps `bson:",inline"`
}

type (
	CreateContactRequest struct {
		CustomerID string      `json:"customerId" binding:"required,uuid"`
		Type       ContactType `json:"type" binding:"required,oneof=email phone mobile fax website"`
		Value      string      `json:"value" binding:"required,min=1,max=255"`
		Label      string      `json:"label" binding:"max=50"`
		IsPrimary  bool        `json:"isPrimary"`
	}

	// AddContactMethodRequest is CreateContactRequest without the customer id,
	// which comes from the path.
	AddContactMethodRequest struct {
		Type      ContactType `json:"type" binding:"required,oneof=email phone mobile fax website"`
		Value     string      `json:"value" binding:"required,min=1,max=255"`
		Label     string      `json:"label" binding:"max=50"`
		IsPrimary bool        `json:"isPrimary"`
	}

	UpdateContactRequest struct {
		Type      *ContactType `json:"type" binding:"omitempty,oneof=email phone mobile fax website"`
		Value     *string      `json:"value" binding:"omitempty,min=1,max=255"`
		Label     *string      `json:"label" binding:"omitempty,max=50"`
		IsPrimary *bool        `json:"isPrimary"`
	}

	ContactFilter struct {
		CustomerID string
		Type       ContactType
		Search     string
	}
)
