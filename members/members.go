package members

import "time"

// Status reflects the member lifecycle as managed by the cooperative's back
// office. Members start PENDING and only ACTIVE members can transact.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusSuspended  Status = "SUSPENDED"
	StatusTerminated Status = "TERMINATED"
	StatusClosed     Status = "CLOSED"
)

// Member is the profile snapshot returned by the backend. The client never
// mutates it server-side directly; profile changes go through a staff-approved
// request.
type Member struct {
	ID             string     `json:"id"`
	MemberID       string     `json:"member_id"`
	FirstName      string     `json:"first_name"`
	MiddleName     string     `json:"middle_name,omitempty"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	Gender         string     `json:"gender"`
	DateOfBirth    string     `json:"date_of_birth,omitempty"`
	NationalID     string     `json:"national_id,omitempty"`
	Address        string     `json:"address,omitempty"`
	Status         Status     `json:"status"`
	TelegramChatID string     `json:"telegram_chat_id,omitempty"`
	ProfilePhoto   string     `json:"profile_photo,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// FullName joins the name parts, skipping an absent middle name.
func (m *Member) FullName() string {
	if m.MiddleName == "" {
		return m.FirstName + " " + m.LastName
	}
	return m.FirstName + " " + m.MiddleName + " " + m.LastName
}

// Update is a partial profile change. Nil fields are left untouched when the
// update is applied.
type Update struct {
	Phone          *string
	Email          *string
	Address        *string
	TelegramChatID *string
	ProfilePhoto   *string
}

// Apply merges the non-nil fields of the update into the member.
func (u Update) Apply(m *Member) {
	if u.Phone != nil {
		m.Phone = *u.Phone
	}
	if u.Email != nil {
		m.Email = *u.Email
	}
	if u.Address != nil {
		m.Address = *u.Address
	}
	if u.TelegramChatID != nil {
		m.TelegramChatID = *u.TelegramChatID
	}
	if u.ProfilePhoto != nil {
		m.ProfilePhoto = *u.ProfilePhoto
	}
}
