package models

// PaperType is the kind of exam a previous-year paper comes from.
type PaperType string

const (
	PaperMidterm    PaperType = "midterm"
	PaperFinal      PaperType = "final"
	PaperQuiz       PaperType = "quiz"
	PaperAssignment PaperType = "assignment"
)

// PaperTypes lists the paper types in display order.
var PaperTypes = []PaperType{PaperMidterm, PaperFinal, PaperQuiz, PaperAssignment}

var paperTypeLabels = map[PaperType]string{
	PaperMidterm:    "Midterm Exam",
	PaperFinal:      "Final Exam",
	PaperQuiz:       "Quiz",
	PaperAssignment: "Assignment",
}

// Label returns the display name, or the raw value when unknown.
func (t PaperType) Label() string {
	if l, ok := paperTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t PaperType) Valid() bool {
	_, ok := paperTypeLabels[t]
	return ok
}

// ActivityType classifies a college activity.
type ActivityType string

const (
	ActivityEvent        ActivityType = "event"
	ActivityAnnouncement ActivityType = "announcement"
	ActivityHoliday      ActivityType = "holiday"
	ActivityNotice       ActivityType = "notice"
	ActivityDeadline     ActivityType = "deadline"
)

// ActivityTypes lists the activity types in display order.
var ActivityTypes = []ActivityType{ActivityEvent, ActivityAnnouncement, ActivityHoliday, ActivityNotice, ActivityDeadline}

// UpcomingActivityTypes are the types shown in "upcoming" widgets.
var UpcomingActivityTypes = []ActivityType{ActivityEvent, ActivityDeadline}

var activityTypeLabels = map[ActivityType]string{
	ActivityEvent:        "Event",
	ActivityAnnouncement: "Announcement",
	ActivityHoliday:      "Holiday",
	ActivityNotice:       "Notice",
	ActivityDeadline:     "Deadline",
}

func (t ActivityType) Label() string {
	if l, ok := activityTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t ActivityType) Valid() bool {
	_, ok := activityTypeLabels[t]
	return ok
}

// Category groups uploaded resources. Its value doubles as the URL slug.
type Category string

const (
	CategoryNotes      Category = "notes"
	CategoryAssignment Category = "assignment"
	CategoryLab        Category = "lab"
	CategoryPYQ        Category = "pyq"
	CategoryRoadmap    Category = "roadmap"
	CategoryWhatsapp   Category = "whatsapp"
	CategoryOfficial   Category = "official"
)

// Categories lists the resource categories in display order.
var Categories = []Category{
	CategoryNotes, CategoryAssignment, CategoryLab, CategoryPYQ,
	CategoryRoadmap, CategoryWhatsapp, CategoryOfficial,
}

var categoryLabels = map[Category]string{
	CategoryNotes:      "Notes",
	CategoryAssignment: "Assignment",
	CategoryLab:        "Lab File",
	CategoryPYQ:        "PYQ",
	CategoryRoadmap:    "Roadmap",
	CategoryWhatsapp:   "Whatsapp Community",
	CategoryOfficial:   "Official Links",
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Semester bounds.
const (
	MinSemester     = 1
	MaxSemester     = 8
	DefaultSemester = 1
)
