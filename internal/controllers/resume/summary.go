package resumeController

import (
	"fmt"
	"strings"

	. "resumehub/internal/models"
)

const (
	defaultSummaryName = "This professional"
	defaultSummaryRole = "Software Developer"
	summaryTopSkills   = 5
)

// GenerateSummary builds a professional summary from counts of the resume
// sections. It is rule based and deterministic.
func GenerateSummary(request GenerateSummaryRequest) string {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		name = defaultSummaryName
	}
	role := strings.TrimSpace(request.Role)
	if role == "" {
		role = defaultSummaryRole
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a passionate %s", name, role)

	if len(request.Skills) > 0 {
		top := request.Skills[:min(len(request.Skills), summaryTopSkills)]
		fmt.Fprintf(&b, " with expertise in %s", strings.Join(top, ", "))
	}

	if n := len(request.Projects); n > 0 {
		fmt.Fprintf(&b, ". With hands-on experience in %d %s", n, plural(n, "project"))
	}

	if n := len(request.Experience); n > 0 {
		fmt.Fprintf(&b, " and %d %s of professional experience", n, plural(n, "position"))
	}

	if n := len(request.Courses); n > 0 {
		firstName := strings.Fields(name)[0]
		fmt.Fprintf(&b, ", %s demonstrates continuous learning through %d completed %s",
			firstName, n, plural(n, "course"))
	}

	if n := len(request.Achievements); n > 0 {
		fmt.Fprintf(&b, " and has earned %d notable %s", n, plural(n, "achievement"))
	}

	b.WriteString(". Known for delivering high-quality solutions and staying current with industry trends.")
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
