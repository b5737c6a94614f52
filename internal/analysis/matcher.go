package analysis

// neutralMatchScore is returned when the job description mentions no
// recognizable skills, so there is nothing to match against.
const neutralMatchScore = 50

// Match compares the skills detected in a resume against those detected in
// a job description. It returns the match percentage and the job skills the
// resume lacks, in vocabulary order. An empty job skill set yields the
// neutral score and no missing skills.
func Match(resumeSkills, jobSkills []string) (int, []string) {
	if len(jobSkills) == 0 {
		return neutralMatchScore, nil
	}

	have := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = struct{}{}
	}

	matched := 0
	var missing []string
	for _, s := range jobSkills {
		if _, ok := have[s]; ok {
			matched++
		} else {
			missing = append(missing, s)
		}
	}

	score := int(float64(matched) / float64(len(jobSkills)) * 100)
	return min(score, maxScore), missing
}
