package valueobject

import "strings"

// SkillSet - упорядоченное множество названий навыков без дубликатов.
type SkillSet []string

func NewSkillSet(skills []string) SkillSet {
	set := make(SkillSet, 0, len(skills))
	for _, skill := range skills {
		set, _ = set.Add(skill)
	}
	return set
}

func (s SkillSet) Contains(skill string) bool {
	skill = strings.TrimSpace(skill)
	for _, existing := range s {
		if existing == skill {
			return true
		}
	}
	return false
}

// Add возвращает множество с добавленным навыком и признак изменения.
func (s SkillSet) Add(skill string) (SkillSet, bool) {
	skill = strings.TrimSpace(skill)
	if skill == "" || s.Contains(skill) {
		return s, false
	}
	return append(s, skill), true
}

// Remove возвращает множество без навыка и признак изменения.
func (s SkillSet) Remove(skill string) (SkillSet, bool) {
	skill = strings.TrimSpace(skill)
	for i, existing := range s {
		if existing == skill {
			out := make(SkillSet, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...), true
		}
	}
	return s, false
}

// MatchesFold проверяет вхождение подстроки без учёта регистра хотя бы в один навык.
func (s SkillSet) MatchesFold(query string) bool {
	query = strings.ToLower(query)
	for _, skill := range s {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}
