package quiz

import (
	"sort"

	"github.com/example/wordquiz/pkg/models"
)

// categoryStats aggregates performance per category; words without a
// category are grouped under ""
func categoryStats(corpus []models.Word, records map[string]models.PerformanceRecord) []models.CategoryStatistics {
	byCategory := make(map[string]*models.CategoryStatistics)
	for _, w := range corpus {
		stat, ok := byCategory[w.Category]
		if !ok {
			stat = &models.CategoryStatistics{Category: w.Category}
			byCategory[w.Category] = stat
		}
		stat.TotalWords++

		record, ok := records[w.ID]
		if !ok || record.Seen == 0 {
			continue
		}
		stat.SeenWords++
		stat.Answers += record.Seen
		stat.Correct += record.Correct
	}

	stats := make([]models.CategoryStatistics, 0, len(byCategory))
	for _, stat := range byCategory {
		if stat.Answers > 0 {
			stat.Accuracy = float64(stat.Correct) / float64(stat.Answers)
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// categories lists the distinct non-empty categories in sorted order
func categories(corpus []models.Word) []string {
	seen := make(map[string]bool)
	list := make([]string, 0)
	for _, w := range corpus {
		if w.Category == "" || seen[w.Category] {
			continue
		}
		seen[w.Category] = true
		list = append(list, w.Category)
	}
	sort.Strings(list)
	return list
}
