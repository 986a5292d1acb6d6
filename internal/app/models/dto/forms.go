package dto

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/pkg/validation"
)

// LoginForm carries the login credentials. Identifier is a username or an email.
type LoginForm struct {
	Identifier string `form:"username" validate:"required,max=254"`
	Password   string `form:"password" validate:"required"`
	Next       string `form:"next" validate:"-"`
}

// SignupForm is the registration form.
type SignupForm struct {
	Username  string `form:"username" validate:"required,max=150,username_chars"`
	Email     string `form:"email" validate:"required,email,max=254"`
	Password  string `form:"password" validate:"required"`
	Password2 string `form:"password_2" validate:"required"`
	CollegeID string `form:"college_id" validate:"max=50"`
}

// Normalize trims the text inputs. Passwords are left untouched.
func (f *SignupForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.CollegeID = strings.TrimSpace(f.CollegeID)
}

// Validate checks everything that does not need the store. Username and
// email uniqueness are checked by the auth service.
func (f *SignupForm) Validate() validation.Errors {
	errs := validation.Struct(f)

	if f.Password != "" && f.Password2 != "" {
		if f.Password != f.Password2 {
			errs.Add("password_2", "The two password fields didn't match.")
		} else {
			for _, problem := range validation.PasswordProblems(f.Password, f.Username) {
				errs.Add("password_2", problem)
			}
		}
	}
	return errs
}

// ResourceUploadForm is the resource upload form. File and Link are both
// optional, so a resource with neither is accepted.
type ResourceUploadForm struct {
	Title       string                `form:"title" validate:"required,notblank,max=255"`
	Category    string                `form:"category" validate:"required,oneof=notes assignment lab pyq roadmap whatsapp official"`
	Description string                `form:"description" validate:"-"`
	Link        string                `form:"link" validate:"omitempty,url,web_url,max=200"`
	File        *multipart.FileHeader `form:"-" validate:"-"`
}

func (f *ResourceUploadForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Category = strings.TrimSpace(f.Category)
	f.Description = strings.TrimSpace(f.Description)
	f.Link = strings.TrimSpace(f.Link)
}

// Validate checks the form. maxFileBytes <= 0 disables the size check.
func (f *ResourceUploadForm) Validate(maxFileBytes int64) validation.Errors {
	errs := validation.Struct(f)
	if f.File != nil {
		if f.File.Size == 0 {
			errs.Add("file", "The submitted file is empty.")
		} else if maxFileBytes > 0 && f.File.Size > maxFileBytes {
			errs.Add("file", "The submitted file is too large.")
		}
	}
	return errs
}

// ProfileForm edits the optional profile fields. Username and email are
// set at signup and are not part of it.
type ProfileForm struct {
	FirstName      string                `form:"first_name" validate:"max=150"`
	LastName       string                `form:"last_name" validate:"max=150"`
	CollegeID      string                `form:"college_id" validate:"max=50"`
	Semester       string                `form:"semester" validate:"omitempty,oneof=1 2 3 4 5 6 7 8"`
	Bio            string                `form:"bio" validate:"-"`
	ClearPicture   bool                  `form:"clear_picture" validate:"-"`
	ProfilePicture *multipart.FileHeader `form:"-" validate:"-"`
}

func (f *ProfileForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.CollegeID = strings.TrimSpace(f.CollegeID)
	f.Semester = strings.TrimSpace(f.Semester)
	f.Bio = strings.TrimSpace(f.Bio)
}

func (f *ProfileForm) Validate(maxFileBytes int64) validation.Errors {
	errs := validation.Struct(f)
	if msg := validation.ImageProblem(f.ProfilePicture); msg != "" {
		errs.Add("profile_picture", msg)
	} else if f.ProfilePicture != nil && maxFileBytes > 0 && f.ProfilePicture.Size > maxFileBytes {
		errs.Add("profile_picture", "The submitted file is too large.")
	}
	return errs
}

// SemesterValue returns the chosen semester, nil when left blank.
func (f *ProfileForm) SemesterValue() *int {
	if f.Semester == "" {
		return nil
	}
	n, err := strconv.Atoi(f.Semester)
	if err != nil || n < models.MinSemester || n > models.MaxSemester {
		return nil
	}
	return &n
}

// ProfileFormFor pre-fills the edit form from a user.
func ProfileFormFor(u *models.User) ProfileForm {
	form := ProfileForm{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CollegeID: u.CollegeID,
		Bio:       u.Bio,
	}
	if u.Semester != nil {
		form.Semester = strconv.Itoa(*u.Semester)
	}
	return form
}
