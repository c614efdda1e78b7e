package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrLiabilityNotFound is returned when a patch targets an unknown id.
	ErrLiabilityNotFound = errors.New("liability not found")

	// ErrDuplicateLiability is returned when an id is already in the collection.
	ErrDuplicateLiability = errors.New("duplicate liability id")

	// ErrUnknownField is returned for a patch field outside LiabilityField.
	ErrUnknownField = errors.New("unknown liability field")
)

// DefaultLiabilityName labels a liability added without a name.
const DefaultLiabilityName = "New Debt"

// Liability is a non-mortgage debt paid off from the sale proceeds.
type Liability struct {
	ID             string  `json:"id" yaml:"id" mapstructure:"id"`
	Name           string  `json:"name" yaml:"name" mapstructure:"name"`
	Balance        float64 `json:"balance" yaml:"balance" mapstructure:"balance"`
	MonthlyPayment float64 `json:"monthlyPayment" yaml:"monthlyPayment" mapstructure:"monthlyPayment"`
}

// NewLiability returns a liability with a freshly generated id.
func NewLiability(name string, balance, monthlyPayment float64) Liability {
	if strings.TrimSpace(name) == "" {
		name = DefaultLiabilityName
	}
	return Liability{
		ID:             uuid.NewString(),
		Name:           name,
		Balance:        balance,
		MonthlyPayment: monthlyPayment,
	}
}

// Liabilities is an id-keyed collection kept in insertion order. Methods
// never modify the receiver; they return an updated copy.
type Liabilities []Liability

// TotalBalance sums the outstanding balances.
func (ls Liabilities) TotalBalance() float64 {
	total := 0.0
	for _, l := range ls {
		total += l.Balance
	}
	return total
}

// TotalMonthlyPayment sums the monthly payments.
func (ls Liabilities) TotalMonthlyPayment() float64 {
	total := 0.0
	for _, l := range ls {
		total += l.MonthlyPayment
	}
	return total
}

// Index returns the position of id, or -1.
func (ls Liabilities) Index(id string) int {
	for i, l := range ls {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Add appends l. An empty id is filled with a new one.
func (ls Liabilities) Add(l Liability) (Liabilities, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if ls.Index(l.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateLiability, l.ID)
	}
	out := make(Liabilities, 0, len(ls)+1)
	out = append(out, ls...)
	return append(out, l), nil
}

// Remove drops the liability with the given id. Unknown ids are ignored.
func (ls Liabilities) Remove(id string) Liabilities {
	out := make(Liabilities, 0, len(ls))
	for _, l := range ls {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// Apply returns a copy of the collection with patch applied to one record.
func (ls Liabilities) Apply(patch LiabilityPatch) (Liabilities, error) {
	idx := ls.Index(patch.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrLiabilityNotFound, patch.ID)
	}

	updated := ls[idx]
	switch patch.Field {
	case FieldName:
		updated.Name = patch.Name
	case FieldBalance:
		updated.Balance = patch.Amount
	case FieldMonthlyPayment:
		updated.MonthlyPayment = patch.Amount
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownField, patch.Field)
	}

	out := make(Liabilities, len(ls))
	copy(out, ls)
	out[idx] = updated
	return out, nil
}

// WithFreshIDs returns a copy where every liability has a new id.
func (ls Liabilities) WithFreshIDs() Liabilities {
	out := make(Liabilities, len(ls))
	for i, l := range ls {
		l.ID = uuid.NewString()
		out[i] = l
	}
	return out
}

// LiabilityField names the single field a LiabilityPatch updates.
type LiabilityField int

const (
	FieldName LiabilityField = iota + 1
	FieldBalance
	FieldMonthlyPayment
)

var liabilityFieldNames = map[LiabilityField]string{
	FieldName:           "name",
	FieldBalance:        "balance",
	FieldMonthlyPayment: "monthlyPayment",
}

func (f LiabilityField) String() string {
	if name, ok := liabilityFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("LiabilityField(%d)", int(f))
}

// ParseLiabilityField maps a field name (case-insensitive) to a LiabilityField.
func ParseLiabilityField(name string) (LiabilityField, error) {
	trimmed := strings.TrimSpace(name)
	for field, fieldName := range liabilityFieldNames {
		if strings.EqualFold(fieldName, trimmed) {
			return field, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// LiabilityPatch sets one field of the liability identified by ID. Name is
// read for FieldName, Amount for the numeric fields.
type LiabilityPatch struct {
	ID     string
	Field  LiabilityField
	Name   string
	Amount float64
}
