package forms

import (
	"fmt"
	"strings"
)

// ValidateForm checks a form definition before it is sent to the backend.
// Messages are in Portuguese, matching what the dashboard displays.
func ValidateForm(in FormInput) []string {
	var errs []string

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "Título é obrigatório")
	}
	if in.StartDate.IsZero() {
		errs = append(errs, "Data de início é obrigatória")
	}
	if in.EndDate.IsZero() {
		errs = append(errs, "Data de fim é obrigatória")
	}
	if len(in.AssignedUsers) == 0 {
		errs = append(errs, "Selecione pelo menos um usuário")
	}
	if len(in.Sections) == 0 {
		errs = append(errs, "Adicione pelo menos uma seção")
	}

	for si, section := range in.Sections {
		prefix := fmt.Sprintf("Seção %d", si+1)
		if strings.TrimSpace(section.Title) == "" {
			errs = append(errs, prefix+": Título é obrigatório")
		}
		if len(section.Questions) == 0 {
			errs = append(errs, prefix+": Adicione pelo menos uma questão")
		}
		for qi, q := range section.Questions {
			qPrefix := fmt.Sprintf("%s, Questão %d", prefix, qi+1)
			if strings.TrimSpace(q.Title) == "" {
				errs = append(errs, qPrefix+": Título é obrigatório")
			}
			if q.Type == "" {
				errs = append(errs, qPrefix+": Tipo é obrigatório")
			}
			if q.IsChoice() {
				if len(q.Options) == 0 {
					errs = append(errs, qPrefix+": Adicione pelo menos uma opção")
				}
				for _, opt := range q.Options {
					if strings.TrimSpace(opt) == "" {
						errs = append(errs, qPrefix+": Todas as opções devem ser preenchidas")
						break
					}
				}
			}
		}
	}

	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && !in.StartDate.Before(in.EndDate) {
		errs = append(errs, "Data de fim deve ser posterior à data de início")
	}

	return errs
}

// ValidateResponse checks answers against the form's required questions.
func ValidateResponse(form *Form, answers map[string]any) []string {
	var errs []string
	for _, section := range form.Sections {
		for _, q := range section.Questions {
			if !q.Required {
				continue
			}
			if !answered(answers[q.ID]) {
				errs = append(errs, fmt.Sprintf("%s - %s: Campo obrigatório", section.Title, q.Title))
			}
		}
	}
	return errs
}

// Progress reports the percentage of questions answered, rounded to the
// nearest integer.
func Progress(form *Form, answers map[string]any) int {
	total := form.QuestionCount()
	if total == 0 {
		return 0
	}
	count := 0
	for _, v := range answers {
		if answered(v) {
			count++
		}
	}
	return int(float64(count)/float64(total)*100 + 0.5)
}

func answered(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	default:
		return true
	}
}

// normalizeSections drops empty options from choice questions before a form
// definition goes to the backend.
func normalizeSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, section := range sections {
		s := section
		s.Questions = make([]Question, len(section.Questions))
		for j, q := range section.Questions {
			clean := q
			if len(q.Options) > 0 {
				clean.Options = make([]string, 0, len(q.Options))
				for _, opt := range q.Options {
					if strings.TrimSpace(opt) != "" {
						clean.Options = append(clean.Options, opt)
					}
				}
			}
			s.Questions[j] = clean
		}
		out[i] = s
	}
	return out
}
