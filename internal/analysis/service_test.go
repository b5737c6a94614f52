package analysis

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"resumelens/internal/types"
)

// fullChecklistResume hits every scoring marker and runs past the length
// bonus threshold.
var fullChecklistResume = "Email: dev@example.com\nPhone: 555-0100\n" +
	"Experience\nDeveloped and led several teams with real achievement and responsibility.\n" +
	"Education\nBSc Computer Science\n" +
	"Skills\nPython, SQL, Docker\n" +
	"Projects\nBuilt internal tools.\n" +
	strings.Repeat("Additional detail about delivered work and outcomes. ", 10)

func TestServiceAnalyze(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	t.Run("full checklist resume scores 100", func(t *testing.T) {
		result, err := svc.Analyze(ctx, types.AnalyzeResumeInput{ResumeText: fullChecklistResume})
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if result.ATSScore != 100 {
			t.Errorf("ATSScore = %d, want 100", result.ATSScore)
		}
		if result.JobMatch != nil {
			t.Errorf("JobMatch = %v, want nil for blank job description", *result.JobMatch)
		}
		if result.MissingSkills != nil {
			t.Errorf("MissingSkills = %v, want nil", result.MissingSkills)
		}
	})

	t.Run("job description populates match and missing skills", func(t *testing.T) {
		result, err := svc.Analyze(ctx, types.AnalyzeResumeInput{
			ResumeText:     "Skills section listing Python and SQL experience at length.",
			JobDescription: "Looking for Python, Java",
		})
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if result.JobMatch == nil {
			t.Fatal("JobMatch is nil, want a value")
		}
		if *result.JobMatch != 50 {
			t.Errorf("JobMatch = %d, want 50", *result.JobMatch)
		}
		if !reflect.DeepEqual(result.MissingSkills, []string{"Java"}) {
			t.Errorf("MissingSkills = %v, want [Java]", result.MissingSkills)
		}
	})

	t.Run("job description without recognizable skills gives neutral match", func(t *testing.T) {
		result, err := svc.Analyze(ctx, types.AnalyzeResumeInput{
			ResumeText:     "Python developer",
			JobDescription: "We want someone nice.",
		})
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if result.JobMatch == nil || *result.JobMatch != 50 {
			t.Errorf("JobMatch = %v, want 50", result.JobMatch)
		}
		if len(result.MissingSkills) != 0 {
			t.Errorf("MissingSkills = %v, want empty", result.MissingSkills)
		}
	})

	t.Run("empty resume text is rejected", func(t *testing.T) {
		_, err := svc.Analyze(ctx, types.AnalyzeResumeInput{ResumeText: "   "})
		if err == nil {
			t.Fatal("Analyze() expected error for blank resume text")
		}
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Analyze(cancelled, types.AnalyzeResumeInput{ResumeText: "Python"})
		if err == nil {
			t.Fatal("Analyze() expected error for cancelled context")
		}
	})

	t.Run("raw text is carried through", func(t *testing.T) {
		result, err := svc.Analyze(ctx, types.AnalyzeResumeInput{ResumeText: "Python developer"})
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if result.RawText != "Python developer" {
			t.Errorf("RawText = %q, want original text", result.RawText)
		}
	})
}

func TestServiceCustomVocabulary(t *testing.T) {
	vocab := NewVocabulary([]string{"Cobol", "Fortran"})
	svc := NewService(vocab, nil)

	result, err := svc.Analyze(context.Background(), types.AnalyzeResumeInput{
		ResumeText: "Cobol maintenance and Python work",
	})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if !reflect.DeepEqual(result.Skills, []string{"Cobol"}) {
		t.Errorf("Skills = %v, want [Cobol] with custom vocabulary", result.Skills)
	}
}

func BenchmarkServiceAnalyze(b *testing.B) {
	svc := NewService(nil, nil)
	input := types.AnalyzeResumeInput{
		ResumeText:     fullChecklistResume,
		JobDescription: "Python, Go, Kubernetes, AWS",
	}

	for b.Loop() {
		if _, err := svc.Analyze(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}
