package zoosdk

import (
	"encoding/base64"
)

// ============================================================================
// Roles and Enumerations
// ============================================================================

// Role is the coarse authorization level assigned to every backend user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleOperator Role = "OPERATOR"
)

// Roles lists every valid role, in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleOperator}
}

// Label returns the human-readable label the original dashboard uses.
// The backend is Italian, so labels are too.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Amministratore"
	case RoleManager:
		return "Manager"
	case RoleOperator:
		return "Operatore"
	}
	return string(r)
}

// OperatorType is the finer classification of OPERATOR-role users.
type OperatorType string

const (
	OperatorZookeeper     OperatorType = "ZOOKEEPER"
	OperatorVeterinarian  OperatorType = "VETERINARIAN"
	OperatorSecurityGuard OperatorType = "SECURITY_GUARD"
)

// OperatorTypes lists every valid operator subtype.
func OperatorTypes() []OperatorType {
	return []OperatorType{OperatorZookeeper, OperatorVeterinarian, OperatorSecurityGuard}
}

// Label returns the Italian display label for the subtype.
func (t OperatorType) Label() string {
	switch t {
	case OperatorZookeeper:
		return "Custode Zoo"
	case OperatorVeterinarian:
		return "Veterinario"
	case OperatorSecurityGuard:
		return "Guardia di Sicurezza"
	}
	return string(t)
}

// AnimalCategory classifies animals, mirroring the backend enum.
type AnimalCategory string

const (
	CategoryMammal    AnimalCategory = "MAMMAL"
	CategoryBird      AnimalCategory = "BIRD"
	CategoryReptile   AnimalCategory = "REPTILE"
	CategoryAmphibian AnimalCategory = "AMPHIBIAN"
	CategoryFish      AnimalCategory = "FISH"
	CategoryInsect    AnimalCategory = "INSECT"
)

// AnimalCategories lists every valid category.
func AnimalCategories() []AnimalCategory {
	return []AnimalCategory{
		CategoryMammal, CategoryBird, CategoryReptile,
		CategoryAmphibian, CategoryFish, CategoryInsect,
	}
}

// Label returns the Italian display label for the category.
func (c AnimalCategory) Label() string {
	switch c {
	case CategoryMammal:
		return "Mammifero"
	case CategoryBird:
		return "Uccello"
	case CategoryReptile:
		return "Rettile"
	case CategoryAmphibian:
		return "Anfibio"
	case CategoryFish:
		return "Pesce"
	case CategoryInsect:
		return "Insetto"
	}
	return string(c)
}

// TicketUrgency is the backend's ticket priority enum. The values are
// Italian (BASSO=low, MEDIO=medium, ALTO=high); they are stored and sent
// verbatim.
type TicketUrgency string

const (
	UrgencyLow    TicketUrgency = "BASSO"
	UrgencyMedium TicketUrgency = "MEDIO"
	UrgencyHigh   TicketUrgency = "ALTO"
)

// TicketUrgencies lists every valid urgency, lowest first.
func TicketUrgencies() []TicketUrgency {
	return []TicketUrgency{UrgencyLow, UrgencyMedium, UrgencyHigh}
}

// ============================================================================
// Principal and Credentials
// ============================================================================

// Principal is the authenticated user's client-side identity record.
// Invariant: OperatorType is non-nil if and only if Role is RoleOperator.
type Principal struct {
	ID           int64         `json:"id"`
	Username     string        `json:"username"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Role         Role          `json:"role"`
	OperatorType *OperatorType `json:"operatorType"`
}

// DisplayName returns "First Last", falling back to the username when the
// backend did not supply a first name.
func (p Principal) DisplayName() string {
	name := p.FirstName
	if name == "" {
		name = p.Username
	}
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}

// Credentials is the raw username/password pair. The backend authenticates
// every request with HTTP Basic auth, so these must be retained for the
// lifetime of the session.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BasicAuthHeader derives the precomputed Authorization header value,
// "Basic base64(username:password)".
func (c Credentials) BasicAuthHeader() string {
	raw := c.Username + ":" + c.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// SessionState is the durable client-side session snapshot: the principal,
// the raw credentials, and the cached Basic auth header. AuthHeader must
// always be re-derivable from Credentials; stores may persist it empty and
// let the gateway re-derive it on first use.
type SessionState struct {
	Principal   *Principal   `json:"principal,omitempty"`
	Credentials *Credentials `json:"credentials,omitempty"`
	AuthHeader  string       `json:"authHeader,omitempty"`
}

// SessionStore is durable storage for SessionState. Implementations live in
// the credstore package; the interface is declared here so the SDK does not
// depend on any particular persistence mechanism.
type SessionStore interface {
	// Save replaces the stored session state.
	Save(state SessionState) error

	// Load returns the stored state and whether any state was present.
	// A corrupt store returns an error; callers should treat that as a
	// forced logout and Clear.
	Load() (SessionState, bool, error)

	// Clear removes all stored session state. Clearing an empty store is
	// a no-op.
	Clear() error
}

// ============================================================================
// Domain Records
// ============================================================================

// Animal mirrors the backend's AnimalDto. User and Enclosure are foreign
// keys and may be null.
type Animal struct {
	ID        int64          `json:"id,omitempty"`
	Name      string         `json:"name"`
	Category  AnimalCategory `json:"category"`
	Weight    float64        `json:"weight"`
	User      *int64         `json:"user"`
	Enclosure *int64         `json:"enclosure"`
}

// Enclosure mirrors the backend's EnclosureDtoInput, which the backend uses
// for both input and output.
type Enclosure struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Area        float64 `json:"area"`
	Description string  `json:"description"`
	User        *int64  `json:"user"`
	Animals     []int64 `json:"animals"`
}

// User is the backend's UserDtoOutput: the record shape returned by user
// reads, with nested owned records.
type User struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	LastName     string        `json:"lastName"`
	Username     string        `json:"username"`
	Role         Role          `json:"role"`
	OperatorType *OperatorType `json:"operatorType"`
	Animals      []Animal      `json:"animals"`
	Enclosures   []Enclosure   `json:"enclosures"`
	Tickets      []Ticket      `json:"tickets"`
}

// UserInput is the backend's UserDtoInput: the record shape sent on user
// create/update. Owned records are referenced by id.
type UserInput struct {
	ID           int64         `json:"id,omitempty"`
	Name         string        `json:"name"`
	LastName     string        `json:"lastName"`
	Username     string        `json:"username"`
	Password     string        `json:"password,omitempty"`
	Role         Role          `json:"role"`
	OperatorType *OperatorType `json:"operatorType"`
	Animals      []int64       `json:"animals,omitempty"`
	Enclosures   []int64       `json:"enclosures,omitempty"`
	Tickets      []int64       `json:"tickets,omitempty"`
}

// Ticket mirrors the backend's TicketDto. User is the assignee and is null
// while the ticket sits on the dashboard unassigned. CreationDate is a bare
// date ("2026-08-31").
type Ticket struct {
	ID              int64         `json:"id,omitempty"`
	Title           string        `json:"title"`
	RecommendedRole OperatorType  `json:"recommendedRole"`
	Urgency         TicketUrgency `json:"ticketUrgency"`
	CreationDate    string        `json:"creationDate,omitempty"`
	Description     string        `json:"description"`
	User            *int64        `json:"user"`
}

// Assigned reports whether the ticket has been accepted by an operator.
func (t Ticket) Assigned() bool { return t.User != nil }
