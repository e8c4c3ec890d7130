package dto

type VenueRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

type VenueResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type VenueListResponse struct {
	Success bool            `json:"success"`
	Venues  []VenueResponse `json:"venues"`
}

type VenueItemResponse struct {
	Success bool          `json:"success"`
	Venue   VenueResponse `json:"venue"`
}

type EventRequest struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	VenueID     string `json:"venueId,omitempty"`
	VenueName   string `json:"venueName,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

type AttendeeResponse struct {
	MemberID     string `json:"memberId"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Company      string `json:"company,omitempty"`
	RegisteredAt string `json:"registeredAt"`
	Attended     bool   `json:"attended"`
}

type EventResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	VenueID     string             `json:"venueId,omitempty"`
	VenueName   string             `json:"venueName,omitempty"`
	Date        string             `json:"date,omitempty"`
	Description string             `json:"description,omitempty"`
	Attendees   []AttendeeResponse `json:"attendees"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt,omitempty"`
}

type EventListResponse struct {
	Success bool            `json:"success"`
	Events  []EventResponse `json:"events"`
}

type EventItemResponse struct {
	Success bool          `json:"success"`
	Event   EventResponse `json:"event"`
}

type SignUpRequest struct {
	EventID  string `json:"eventId"`
	MemberID string `json:"memberId,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Company  string `json:"company,omitempty"`
}

type SignUpResponse struct {
	Success  bool             `json:"success"`
	Attendee AttendeeResponse `json:"attendee"`
}

type AttendanceRequest struct {
	EventID  string `json:"eventId"`
	MemberID string `json:"memberId"`
}

type FAQRequest struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order,omitempty"`
}

type FAQResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Order     int    `json:"order,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type FAQListResponse struct {
	Success bool          `json:"success"`
	FAQs    []FAQResponse `json:"faqs"`
}

type FAQItemResponse struct {
	Success bool        `json:"success"`
	FAQ     FAQResponse `json:"faq"`
}

type GalleryPhotoRequest struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type GalleryPhotoResponse struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Caption    string `json:"caption,omitempty"`
	UploadedBy string `json:"uploadedBy,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type GalleryListResponse struct {
	Success bool                   `json:"success"`
	Photos  []GalleryPhotoResponse `json:"photos"`
}

type GalleryItemResponse struct {
	Success bool                 `json:"success"`
	Photo   GalleryPhotoResponse `json:"photo"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}
