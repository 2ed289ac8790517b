package evaluation

// Fields is the canonical job-posting field set, matching the sections the
// extraction prompt asks the model to produce. Consolidation and matching
// only ever consider these keys; anything else in a record is ignored.
var Fields = []string{
	"Company name",
	"Job title",
	"Number of openings",
	"Reservation details",
	"Location",
	"Qualifications required",
	"Skills required",
	"Age limit",
	"Salary or compensation details",
	"Application deadline",
	"Mode of application",
	"Contact details",
}
