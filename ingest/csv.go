package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmavani25/teammatch-system/models"
)

// Survey column headers. The upload is rejected when any required column is
// missing; extended columns are optional and default to zero values.
const (
	colTimestamp  = "Timestamp"
	colEmail      = "Email Address"
	colFullName   = "Full Name"
	colClassYear  = "Class Year"
	colMajor      = "Major"
	colAddMajor1  = "Additional Major 1"
	colAddMajor2  = "Additional Major 2"
	colInterests  = "Domains of Interest"
	colHasIdea    = "Do you have an idea (big or small)?"
	colIdea       = "What is your idea?"
	colStage      = "What stage are you at?"
	colRole       = "What role are you interested in taking on a team?"
	colGoals      = "What are your goals for the Lab?"
	colAddInfo    = "Provide any additional information about yourself."
	colHasTeam    = "Do you already have a team?"
	colRegistered = "Has your team been registered?"

	colSkills       = "Skills"
	colExperience   = "Experience Level"
	colTimezone     = "Timezone"
	colAvailability = "Availability"
)

// RequiredColumns are the survey columns every upload must carry.
var RequiredColumns = []string{
	colTimestamp, colEmail, colFullName, colClassYear,
	colMajor, colAddMajor1, colAddMajor2,
	colInterests, colHasIdea, colIdea, colStage,
	colRole, colGoals, colAddInfo, colHasTeam, colRegistered,
}

// needsTeamAnswer is the survey answer selecting a respondent for matching.
const needsTeamAnswer = "no – match me with a team"

// surveyRoles maps the cleaned role answer onto the primary role enum. The
// first survey phrase found in the answer wins; anything unmatched becomes
// RoleOther.
var surveyRoles = []struct {
	phrase string
	role   models.Role
}{
	{"business strategy", models.RoleBusiness},
	{"business", models.RoleBusiness},
	{"engineering", models.RoleEngineer},
	{"software engineer", models.RoleEngineer},
	{"swe", models.RoleEngineer},
	{"dev", models.RoleEngineer},
	{"financial analyst", models.RoleFinance},
	{"financial", models.RoleFinance},
	{"fin", models.RoleFinance},
}

var commaSpacing = regexp.MustCompile(`\s*,\s*`)

// MissingColumnsError reports which required survey columns were absent.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns in the CSV: %s", strings.Join(e.Columns, ", "))
}

// ParseResult is the outcome of one survey parse.
type ParseResult struct {
	Participants []*models.Participant
	Skipped      int // respondents filtered out (already have a team, blank rows, duplicates)
}

// ParseSurvey reads a survey CSV export, validates its columns, cleans the
// answers and produces participants ready for scoring. Labels outside the
// closed interest/goal vocabularies are dropped here so the matching engine
// never sees them. Respondents who already have a team are skipped.
func ParseSurvey(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("survey file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read survey header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	result := &ParseResult{}
	seenEmails := make(map[string]bool)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read survey row %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := field(colFullName)
		email := strings.ToLower(field(colEmail))
		if name == "" && email == "" {
			result.Skipped++
			continue
		}
		if email != "" && seenEmails[email] {
			result.Skipped++
			continue
		}
		if cleanText(field(colHasTeam)) != needsTeamAnswer {
			result.Skipped++
			continue
		}
		if email != "" {
			seenEmails[email] = true
		}

		p := &models.Participant{
			Name:      name,
			Email:     email,
			Majors:    joinMajors(field(colMajor), field(colAddMajor1), field(colAddMajor2)),
			Role:      matchRole(cleanText(field(colRole))),
			Interests: matchVocabulary(cleanText(field(colInterests)), models.InterestVocabulary),
			Goals:     matchVocabulary(cleanText(field(colGoals)), models.GoalVocabulary),
			AddInfo:   field(colAddInfo),
			Idea:      field(colIdea),
		}

		if skills := cleanText(field(colSkills)); skills != "" {
			p.Skills = splitList(skills)
		}
		if level := field(colExperience); level != "" {
			if v, err := strconv.Atoi(level); err == nil {
				p.ExperienceLevel = v
			}
		}
		p.Timezone = field(colTimezone)
		if availability := field(colAvailability); availability != "" {
			p.Availability = parseAvailability(availability)
		}

		result.Participants = append(result.Participants, p)
	}

	return result, nil
}

// cleanText lowercases, trims, and normalizes spacing around commas, the same
// normalization the survey answers were designed around.
func cleanText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return commaSpacing.ReplaceAllString(text, ", ")
}

// matchVocabulary keeps the vocabulary labels mentioned anywhere in the
// cleaned answer. Order follows the vocabulary, not the answer.
func matchVocabulary(answer string, vocabulary []string) []string {
	if answer == "" {
		return nil
	}
	var labels []string
	for _, label := range vocabulary {
		if strings.Contains(answer, label) {
			labels = append(labels, label)
		}
	}
	return labels
}

func matchRole(answer string) models.Role {
	for _, candidate := range surveyRoles {
		if strings.Contains(answer, candidate.phrase) {
			return candidate.role
		}
	}
	return models.RoleOther
}

func joinMajors(majors ...string) string {
	var parts []string
	for _, m := range majors {
		if m = strings.TrimSpace(m); m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, ", ")
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseAvailability parses answers like "Monday:9-17,Tuesday:10-18" into a
// day → [start, end] map. Malformed segments are dropped.
func parseAvailability(value string) map[string][]string {
	availability := make(map[string][]string)
	for _, pair := range strings.Split(value, ",") {
		day, hours, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		start, end, ok := strings.Cut(strings.TrimSpace(hours), "-")
		if !ok {
			continue
		}
		availability[strings.TrimSpace(day)] = []string{strings.TrimSpace(start), strings.TrimSpace(end)}
	}
	if len(availability) == 0 {
		return nil
	}
	return availability
}
