package model

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Collection names inside the record store. Each collection holds one item
// per record plus a single denormalized list blob (see store.ListKey).
const (
	ApplicationsCollection      = "applications"
	VenuesCollection            = "venues"
	EventsCollection            = "events"
	FAQsCollection              = "faqs"
	GalleryCollection           = "gallery"
	PushSubscriptionsCollection = "push-subscriptions"
	AdminTokensCollection       = "admin-tokens"
	LoginTokensCollection       = "login-tokens"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type ApplicationItem struct {
	ID                 string            `json:"id"`
	FirstName          string            `json:"firstName"`
	LastName           string            `json:"lastName,omitempty"`
	Email              string            `json:"email"`
	Company            string            `json:"company,omitempty"`
	Phone              string            `json:"phone"`
	Message            string            `json:"message,omitempty"`
	Status             ApplicationStatus `json:"status"`
	SubmittedAt        string            `json:"submittedAt"`
	ReviewedAt         string            `json:"reviewedAt,omitempty"`
	ReviewedBy         string            `json:"reviewedBy,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	ApproveToken       string            `json:"approveToken,omitempty"`
	RejectToken        string            `json:"rejectToken,omitempty"`
	IsAdmin            bool              `json:"isAdmin,omitempty"`
	IsSuperAdmin       bool              `json:"isSuperAdmin,omitempty"`
	AdminPasswordHash  string            `json:"adminPasswordHash,omitempty"`
	AdminPasswordSalt  string            `json:"adminPasswordSalt,omitempty"`
	MemberPasswordHash string            `json:"memberPasswordHash,omitempty"`
	MemberPasswordSalt string            `json:"memberPasswordSalt,omitempty"`
}

type VenueItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type AttendeeItem struct {
	MemberID     string `json:"memberId"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Company      string `json:"company,omitempty"`
	RegisteredAt string `json:"registeredAt"`
	Attended     bool   `json:"attended"`
}

type EventItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	VenueID     string         `json:"venueId,omitempty"`
	VenueName   string         `json:"venueName,omitempty"`
	Date        string         `json:"date,omitempty"`
	Description string         `json:"description,omitempty"`
	Attendees   []AttendeeItem `json:"attendees"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt,omitempty"`
}

type FAQItem struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Order     int    `json:"order,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type GalleryPhotoItem struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	UploadedBy string `json:"uploadedBy,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type PushSubscriptionItem struct {
	ID        string            `json:"id"`
	Endpoint  string            `json:"endpoint"`
	Keys      map[string]string `json:"keys,omitempty"`
	MemberID  string            `json:"memberId,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

// TokenItem is a single-use, time-bounded credential. The token string is
// also the record's key inside its collection.
type TokenItem struct {
	Token     string `json:"token"`
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expiresAt"`
	Used      bool   `json:"used"`
	UsedAt    string `json:"usedAt,omitempty"`
	CreatedAt string `json:"createdAt"`
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewRecordID builds ids of the form <prefix>_<unix-millis>_<random9>.
func NewRecordID(prefix string) string {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			suffix[i] = idAlphabet[0]
			continue
		}
		suffix[i] = idAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
