package acr

import (
	"regexp"
	"strings"
)

type keywordGroup struct {
	name     string
	keywords []string
}

var modalityKeywords = []keywordGroup{
	{"ct", []string{"ct ", "ct,", "computed tomography", "cta"}},
	{"mri", []string{"mri", "mr ", "magnetic resonance", "mra", "mrcp"}},
	{"us", []string{"ultrasound", "us ", "sonograph", "doppler"}},
	{"xray", []string{"x-ray", "xray", "radiograph", "plain film"}},
	{"nuclear", []string{"pet", "spect", "scintigraphy", "nuclear", "bone scan"}},
	{"fluoroscopy", []string{"fluoroscop", "barium", "swallow study"}},
	{"mammography", []string{"mammograph", "breast imaging"}},
}

var bodyRegionKeywords = []keywordGroup{
	{"head", []string{"head", "brain", "cranial", "intracranial", "skull", "headache"}},
	{"neck", []string{"neck", "cervical spine", "thyroid", "carotid"}},
	{"spine", []string{"spine", "spinal", "lumbar", "thoracic", "back pain"}},
	{"chest", []string{"chest", "thorax", "lung", "pulmonary", "cardiac", "heart"}},
	{"abdomen", []string{"abdomen", "liver", "pancrea", "kidney", "renal", "bowel"}},
	{"pelvis", []string{"pelvis", "pelvic", "bladder", "prostate", "uterus", "ovary"}},
	{"msk", []string{"musculoskeletal", "bone", "joint", "shoulder", "knee", "fracture"}},
	{"vascular", []string{"vascular", "aorta", "artery", "vein", "dvt", "embolism"}},
	{"breast", []string{"breast", "mammary"}},
}

func matchKeywords(text string, groups []keywordGroup) []string {
	textLower := strings.ToLower(text)
	var matched []string
	for _, group := range groups {
		for _, kw := range group.keywords {
			if strings.Contains(textLower, kw) {
				matched = append(matched, group.name)
				break
			}
		}
	}
	return matched
}

// ExtractModalities lists the imaging modalities a free-text title mentions.
func ExtractModalities(text string) []string {
	return matchKeywords(text, modalityKeywords)
}

// ExtractBodyRegions lists the body regions a free-text title mentions.
func ExtractBodyRegions(text string) []string {
	return matchKeywords(text, bodyRegionKeywords)
}

var digitScore = regexp.MustCompile(`\b([1-9])\b`)

// ParseScore extracts an appropriateness score from a rating cell. Ratings
// sometimes arrive as a bare digit, sometimes as the band label.
func ParseScore(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	if m := digitScore.FindStringSubmatch(text); m != nil {
		return int(m[1][0] - '0'), true
	}
	textLower := strings.ToLower(text)
	switch {
	case strings.Contains(textLower, "usually appropriate"):
		return 8, true
	case strings.Contains(textLower, "may be appropriate"):
		return 5, true
	case strings.Contains(textLower, "usually not appropriate"):
		return 2, true
	}
	return 0, false
}

// LevelLabel maps a 1-9 score onto its appropriateness band label.
func LevelLabel(score int, hasScore bool) string {
	switch {
	case !hasScore:
		return "Unknown"
	case score >= 7 && score <= 9:
		return "Usually Appropriate"
	case score >= 4 && score <= 6:
		return "May Be Appropriate"
	case score >= 1 && score <= 3:
		return "Usually Not Appropriate"
	default:
		return "Unknown"
	}
}
