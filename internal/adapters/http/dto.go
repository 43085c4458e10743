package http

import (
	"time"

	"openconference/internal/domain/entities"
	"openconference/internal/ports/input"
)

// epochMillis is the wire form of every timestamp.
type epochMillis int64

func toMillis(t time.Time) epochMillis {
	if t.IsZero() {
		return 0
	}
	return epochMillis(t.UnixMilli())
}

func (m epochMillis) time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

type userDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name,omitempty"`
	Bio       string      `json:"bio,omitempty"`
	CreatedAt epochMillis `json:"createdAt"`
}

func toUserDTO(u *entities.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Bio: u.Bio, CreatedAt: toMillis(u.CreatedAt)}
}

type profileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type conferenceDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	StartDate   epochMillis `json:"startDate"`
	EndDate     epochMillis `json:"endDate"`
	CreatedBy   string      `json:"createdBy"`
	CreatorName string      `json:"creatorName"`
}

func toConferenceDTO(c input.ConferenceView) conferenceDTO {
	return conferenceDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   toMillis(c.StartDate),
		EndDate:     toMillis(c.EndDate),
		CreatedBy:   c.CreatedBy,
		CreatorName: c.CreatorName,
	}
}

type createConferenceRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   epochMillis `json:"startDate"`
	EndDate     epochMillis `json:"endDate"`
}

func (r createConferenceRequest) toInput() input.CreateConferenceInput {
	return input.CreateConferenceInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate.time(),
		EndDate:     r.EndDate.time(),
	}
}

type attendeeDTO struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Bio    string `json:"bio,omitempty"`
}

type meetingDTO struct {
	ID            string      `json:"id"`
	ConferenceID  string      `json:"conferenceId"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	StartTime     epochMillis `json:"startTime"`
	EndTime       epochMillis `json:"endTime"`
	IsPublic      bool        `json:"isPublic"`
	CreatedBy     string      `json:"createdBy"`
	CreatorName   string      `json:"creatorName"`
	AttendeeCount *int        `json:"attendeeCount,omitempty"`
	MyStatus      string      `json:"myStatus,omitempty"`
}

func meetingFields(m entities.Meeting, creatorName string) meetingDTO {
	return meetingDTO{
		ID:           m.ID,
		ConferenceID: m.ConferenceID,
		Title:        m.Title,
		Description:  m.Description,
		StartTime:    toMillis(m.StartTime),
		EndTime:      toMillis(m.EndTime),
		IsPublic:     m.IsPublic,
		CreatedBy:    m.CreatedBy,
		CreatorName:  creatorName,
	}
}

func toMeetingSummaryDTO(s input.MeetingSummary) meetingDTO {
	dto := meetingFields(s.Meeting, s.CreatorName)
	count := s.AttendeeCount
	dto.AttendeeCount = &count
	return dto
}

func toMyMeetingDTO(m input.MyMeeting) meetingDTO {
	dto := toMeetingSummaryDTO(m.MeetingSummary)
	dto.MyStatus = string(m.MyStatus)
	return dto
}

type meetingAttendeeDTO struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
	Name   string `json:"name"`
}

type meetingDetailDTO struct {
	meetingDTO
	Attendees []meetingAttendeeDTO `json:"attendees"`
}

func toMeetingDetailDTO(d *input.MeetingDetail) meetingDetailDTO {
	out := meetingDetailDTO{
		meetingDTO: meetingFields(d.Meeting, d.CreatorName),
		Attendees:  make([]meetingAttendeeDTO, len(d.Attendees)),
	}
	for i, a := range d.Attendees {
		out.Attendees[i] = meetingAttendeeDTO{UserID: a.UserID, Status: string(a.Status), Name: a.Name}
	}
	return out
}

type createMeetingRequest struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	StartTime      epochMillis `json:"startTime"`
	EndTime        epochMillis `json:"endTime"`
	IsPublic       bool        `json:"isPublic"`
	InviteeUserIDs []string    `json:"inviteeUserIds"`
}

func (r createMeetingRequest) toInput(conferenceID string) input.CreateMeetingInput {
	return input.CreateMeetingInput{
		ConferenceID:   conferenceID,
		Title:          r.Title,
		Description:    r.Description,
		StartTime:      r.StartTime.time(),
		EndTime:        r.EndTime.time(),
		IsPublic:       r.IsPublic,
		InviteeUserIDs: r.InviteeUserIDs,
	}
}

type respondRequest struct {
	Status string `json:"status"`
}

type idResponse struct {
	ID string `json:"id"`
}

type attendingResponse struct {
	Attending bool `json:"attending"`
}
