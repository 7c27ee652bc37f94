package parse

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daehyun-ko/jobscout/internal/job"
)

// itemRecruitVariant handles the primary search-result layout
// (div.item_recruit cards).
type itemRecruitVariant struct{}

func (itemRecruitVariant) Name() string { return "item_recruit" }

func (itemRecruitVariant) Select(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.item_recruit")
}

func (itemRecruitVariant) Extract(card *goquery.Selection, base *url.URL) (job.Record, bool) {
	return extractCard(card, base)
}

// listItemVariant handles the alternate .list_item layout served on some
// result pages. Field anchors are the same classes nested differently, so the
// shared extractor applies.
type listItemVariant struct{}

func (listItemVariant) Name() string { return "list_item" }

func (listItemVariant) Select(doc *goquery.Document) *goquery.Selection {
	return doc.Find(".list_item")
}

func (listItemVariant) Extract(card *goquery.Selection, base *url.URL) (job.Record, bool) {
	return extractCard(card, base)
}

func extractCard(card *goquery.Selection, base *url.URL) (job.Record, bool) {
	titleEl := card.Find("h2.job_tit a, .job_tit a, a.job_tit").First()
	title := strings.TrimSpace(titleEl.Text())
	href, _ := titleEl.Attr("href")
	if title == "" && href == "" {
		return job.Record{}, false
	}

	rec := job.Record{
		Title: title,
		URL:   absoluteURL(base, strings.TrimSpace(href)),
	}

	companyEl := card.Find("strong.corp_name a").First()
	if companyEl.Length() == 0 {
		companyEl = card.Find("strong.corp_name, .corp_name a, .company_name").First()
	}
	rec.Company = strings.TrimSpace(companyEl.Text())

	conditions := textList(card, ".job_condition span")
	if len(conditions) > 0 {
		rec.Location = conditions[0]
	}
	if len(conditions) > 1 {
		rec.Career, rec.Education = splitCareerEducation(conditions[1])
	}
	if len(conditions) > 2 {
		rec.Salary = conditions[2]
	}

	categories := textList(card, ".job_sector a")
	rec.JobCategory = strings.Join(categories, ", ")

	skills := textList(card, ".tag span, .toolTip.wrap_keyword span, .job_keyword span")
	if len(skills) == 0 {
		skills = textList(card, ".job_sector span.badge")
	}
	if len(skills) == 0 {
		skills = categories
	}
	rec.Skills = skills

	rec.PostedAt, rec.DueDate = splitDates(textList(card, ".job_date span"))

	return rec, true
}

// splitCareerEducation untangles the combined career/education condition the
// source renders in one span.
func splitCareerEducation(raw string) (career, education string) {
	if strings.Contains(raw, "경력무관") {
		career = "무관"
	} else if strings.Contains(raw, "년") || strings.Contains(raw, "신입") || strings.Contains(raw, "경력") {
		career = raw
	}
	if strings.Contains(raw, "학력무관") {
		education = "무관"
	} else if strings.Contains(raw, "졸") {
		education = raw
	}
	return career, education
}

// splitDates assigns date texts to posted/due: deadlines carry a leading
// tilde, registration dates do not.
func splitDates(dates []string) (postedAt, dueDate string) {
	for _, d := range dates {
		if strings.Contains(d, "~") {
			if dueDate == "" {
				dueDate = d
			}
			continue
		}
		if postedAt == "" {
			postedAt = d
		}
	}
	return postedAt, dueDate
}

func textList(card *goquery.Selection, selector string) []string {
	var out []string
	card.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}
