package models

import "time"

// ClassStatus is the lifecycle flag of a class.
type ClassStatus string

const (
	ClassStatusActive   ClassStatus = "active"
	ClassStatusInactive ClassStatus = "inactive"
	ClassStatusArchived ClassStatus = "archived"
)

// DefaultClassCapacity applies when a create request omits capacity.
const DefaultClassCapacity = 50

// Class is a teacher's section of a subject.
type Class struct {
	ID             int64       `db:"id" json:"id"`
	SubjectID      int64       `db:"subject_id" json:"subjectId"`
	TeacherID      string      `db:"teacher_id" json:"teacherId"`
	InviteCode     string      `db:"invite_code" json:"inviteCode"`
	Name           string      `db:"name" json:"name"`
	BannerCldPubID *string     `db:"banner_cld_pub_id" json:"bannerCldPubId"`
	BannerURL      *string     `db:"banner_url" json:"bannerUrl"`
	Description    *string     `db:"description" json:"description"`
	Capacity       int         `db:"capacity" json:"capacity"`
	Status         ClassStatus `db:"status" json:"status"`
	Schedules      Schedules   `db:"schedules" json:"schedules"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updatedAt"`
}

// ClassListItem is a class with its subject and teacher.
type ClassListItem struct {
	Class
	Subject *Subject `json:"subject"`
	Teacher *User    `json:"teacher"`
}

// ClassDetail adds the subject's department to ClassListItem.
type ClassDetail struct {
	ClassListItem
	Department *Department `json:"department"`
}

// ClassFilter captures the validated filters for listing classes.
type ClassFilter struct {
	Search    string
	SubjectID *int64
	TeacherID string
	PageRequest
}

// CreateClassRequest is the payload for creating a class.
type CreateClassRequest struct {
	Name           string      `json:"name" validate:"required,max=255"`
	Description    *string     `json:"description"`
	SubjectID      int64       `json:"subjectId" validate:"required,gt=0"`
	TeacherID      string      `json:"teacherId" validate:"omitempty,max=255"`
	BannerURL      *string     `json:"bannerUrl" validate:"omitempty,url"`
	BannerCldPubID *string     `json:"bannerCldPubId"`
	Capacity       *int        `json:"capacity" validate:"omitempty,gt=0,lte=2147483647"`
	Status         ClassStatus `json:"status" validate:"omitempty,oneof=active inactive archived"`
	Schedules      Schedules   `json:"schedules"`
}

// UpdateClassRequest is a partial update; nil fields are left untouched.
type UpdateClassRequest struct {
	Name           *string      `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string      `json:"description"`
	SubjectID      *int64       `json:"subjectId" validate:"omitempty,gt=0"`
	TeacherID      *string      `json:"teacherId" validate:"omitempty,min=1,max=255"`
	BannerURL      *string      `json:"bannerUrl" validate:"omitempty,url"`
	BannerCldPubID *string      `json:"bannerCldPubId"`
	Capacity       *int         `json:"capacity" validate:"omitempty,gt=0,lte=2147483647"`
	Status         *ClassStatus `json:"status" validate:"omitempty,oneof=active inactive archived"`
	Schedules      Schedules    `json:"schedules"`
}

// Empty reports whether the update carries no changes.
func (r UpdateClassRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.SubjectID == nil && r.TeacherID == nil &&
		r.BannerURL == nil && r.BannerCldPubID == nil && r.Capacity == nil && r.Status == nil &&
		r.Schedules == nil
}

// CreatedResource is returned by create endpoints.
type CreatedResource struct {
	ID int64 `json:"id"`
}
