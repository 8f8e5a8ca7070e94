package fieldops

import (
	"encoding/json"
	"time"
)

// ID is a resource identifier. The API emits identifiers both as JSON
// strings and as JSON numbers depending on the resource, so ID accepts
// either form and always renders as a string.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (i *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*i = ID(n.String())

	return nil
}

// MarshalJSON implements json.Marshaler.
func (i ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(i))
}

func (i ID) String() string {
	return string(i)
}

// Entity is implemented by every resource type held in client state.
type Entity interface {
	EntityID() string
}

// PageInfo describes the pagination metadata returned by list endpoints.
type PageInfo struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	LastPage    int `json:"last_page"    yaml:"last_page"`
	Total       int `json:"total"        yaml:"total"`
	PerPage     int `json:"per_page"     yaml:"per_page"`
}

// Result is the uniform envelope returned by every resource and auth
// operation. A failed operation carries a display-safe Error message and a
// zero Data value; the only way to observe failure is the Success flag.
type Result[T any] struct {
	Success bool   `json:"success"         yaml:"success"`
	Data    T      `json:"data,omitempty"  yaml:"data,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Ok builds a success Result.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failure Result.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Error: message}
}

// Outlet represents a retail outlet visited by field representatives.
type Outlet struct {
	ID        ID        `json:"id"                   yaml:"id"`
	Name      string    `json:"name"                 yaml:"name"`
	OwnerName string    `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
	Phone     string    `json:"phone,omitempty"      yaml:"phone,omitempty"`
	Address   string    `json:"address,omitempty"    yaml:"address,omitempty"`
	District  string    `json:"district,omitempty"   yaml:"district,omitempty"`
	Status    string    `json:"status,omitempty"     yaml:"status,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"   yaml:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"  yaml:"longitude,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"  yaml:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"  yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero"  yaml:"updated_at,omitempty"`
}

// EntityID implements Entity.
func (o Outlet) EntityID() string { return string(o.ID) }

// User represents a field representative or back-office account.
type User struct {
	ID       ID     `json:"id"                  yaml:"id"`
	Name     string `json:"name"                yaml:"name"`
	Username string `json:"username,omitempty"  yaml:"username,omitempty"`
	Phone    string `json:"phone,omitempty"     yaml:"phone,omitempty"`
	Role     string `json:"role,omitempty"      yaml:"role,omitempty"`
	PhotoURL string `json:"photo_url,omitempty" yaml:"photo_url,omitempty"`
}

// EntityID implements Entity.
func (u User) EntityID() string { return string(u.ID) }

// Visit represents a completed outlet visit.
type Visit struct {
	ID        ID     `json:"id"                   yaml:"id"`
	OutletID  ID     `json:"outlet_id"            yaml:"outlet_id"`
	UserID    ID     `json:"user_id"              yaml:"user_id"`
	VisitDate string `json:"visit_date,omitempty" yaml:"visit_date,omitempty"`
	CheckIn   string `json:"check_in,omitempty"   yaml:"check_in,omitempty"`
	CheckOut  string `json:"check_out,omitempty"  yaml:"check_out,omitempty"`
	Notes     string `json:"notes,omitempty"      yaml:"notes,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"  yaml:"photo_url,omitempty"`
}

// EntityID implements Entity.
func (v Visit) EntityID() string { return string(v.ID) }

// PlanVisit represents a scheduled (not yet executed) outlet visit.
type PlanVisit struct {
	ID          ID     `json:"id"                     yaml:"id"`
	OutletID    ID     `json:"outlet_id"              yaml:"outlet_id"`
	UserID      ID     `json:"user_id"                yaml:"user_id"`
	PlannedDate string `json:"planned_date,omitempty" yaml:"planned_date,omitempty"`
	Status      string `json:"status,omitempty"       yaml:"status,omitempty"`
}

// EntityID implements Entity.
func (p PlanVisit) EntityID() string { return string(p.ID) }

// Notification represents an in-app notification for a user.
type Notification struct {
	ID        ID         `json:"id"                  yaml:"id"`
	Title     string     `json:"title"               yaml:"title"`
	Body      string     `json:"body,omitempty"      yaml:"body,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"   yaml:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// EntityID implements Entity.
func (n Notification) EntityID() string { return string(n.ID) }

// Session is the credential payload returned by Login and VerifyOTP. The
// client never persists it; callers store the token wherever they need it.
type Session struct {
	Token string `json:"token" yaml:"token"`
	User  User   `json:"user"  yaml:"user"`
}

// OTPChallenge is returned by RequestOTP.
type OTPChallenge struct {
	Phone     string `json:"phone"                yaml:"phone"`
	ExpiresIn int    `json:"expires_in,omitempty" yaml:"expires_in,omitempty"`
}

// UploadMode selects the endpoint for multipart uploads: create posts to the
// resource base path, update posts to the entity path.
type UploadMode string

const (
	UploadModeCreate UploadMode = "create"
	UploadModeUpdate UploadMode = "update"
)
