package domain

// Built-in pipeline names.
const (
	Knowledge  = "knowledge"
	Ethics     = "ethics"
	Discipline = "discipline"
	Fitness    = "fitness"
	Merit      = "merit"
	Exam       = "exam"
	Evaluation = "evaluation"
)

var noteHeaders = []string{"หมายเหตุ"}

// location rules shared by every pipeline; order matters, see ClassifyColumns.
func locationRules() []Rule {
	return []Rule{
		{Role: RoleOrder, Any: []string{"ลำดับ", "no."}, None: []string{"อันดับ"}},
		{Role: RoleNote, Any: []string{"หมายเหตุ"}},
		{Role: RoleBattalion, Any: []string{"กองพัน", "พัน."}},
		{Role: RoleCompany, Any: []string{"กองร้อย", "ร้อย."}},
	}
}

func percentRule() Rule {
	return Rule{Role: RolePercent, Any: []string{"ร้อยละ", "เปอร์เซ็นต์"}}
}

func totalRule() Rule {
	return Rule{Role: RoleTotal, Any: []string{"คะแนนรวม", "รวม"}}
}

// Builtins returns fresh copies of the seven import pipelines.
func Builtins() []Domain {
	return []Domain{
		KnowledgeDomain(),
		EthicsDomain(),
		DisciplineDomain(),
		FitnessDomain(),
		MeritDomain(),
		ExamDomain(),
		EvaluationDomain(),
	}
}

// KnowledgeDomain is the theory and practical knowledge test.
func KnowledgeDomain() Domain {
	return Domain{
		Name:              Knowledge,
		Title:             "ผลการทดสอบความรู้",
		SheetName:         "ความรู้",
		SheetAliases:      []string{"ผลการทดสอบความรู้", "knowledge"},
		HeaderKeywords:    []string{"ลำดับ", "กองพัน", "กองร้อย", "ทฤษฎี", "ปฏิบัติ", "คะแนน", "รวม", "หมายเหตุ"},
		HeaderMinMatches:  2,
		HeaderScanRows:    15,
		SecondaryKeywords: []string{"ทฤษฎี", "ปฏิบัติ", "รวม", "ร้อยละ", "เต็ม"},
		Rules: append(locationRules(),
			Rule{Role: RoleTheory, Any: []string{"ทฤษฎี"}},
			Rule{Role: RolePractical, Any: []string{"ปฏิบัติ"}},
			percentRule(),
			totalRule(),
		),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
		},
		Required:     []Role{RoleCompany, RoleTotal},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RoleTheory, Column: "theory_score"},
			{Role: RolePractical, Column: "practical_score"},
			{Role: RoleTotal, Column: "total_score"},
			{Role: RolePercent, Column: "percent_score"},
		},
		NoteHeaderKeywords: noteHeaders,
		Table:              "knowledge_scores",
	}
}

// EthicsDomain is the ethics and morality assessment.
func EthicsDomain() Domain {
	return Domain{
		Name:              Ethics,
		Title:             "ผลการประเมินคุณธรรมจริยธรรม",
		SheetName:         "คุณธรรมจริยธรรม",
		SheetAliases:      []string{"จริยธรรม", "ethics"},
		HeaderKeywords:    []string{"ลำดับ", "กองพัน", "กองร้อย", "คะแนน", "รวม", "ร้อยละ", "หมายเหตุ"},
		HeaderMinMatches:  2,
		SecondaryKeywords: []string{"คะแนน", "รวม", "ร้อยละ", "เต็ม"},
		Rules:             append(locationRules(), percentRule(), totalRule()),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
			{Role: RoleNote, Index: 5},
		},
		Required:     []Role{RoleCompany, RoleTotal},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RoleTotal, Column: "total_score"},
			{Role: RolePercent, Column: "percent_score"},
		},
		NoteHeaderKeywords: noteHeaders,
		Table:              "ethics_scores",
	}
}

// DisciplineDomain is the conduct sheet: points deducted and points remaining.
// Its template is fixed, so every column has a fallback position.
func DisciplineDomain() Domain {
	return Domain{
		Name:              Discipline,
		Title:             "คะแนนความประพฤติ",
		SheetName:         "วินัย",
		SheetAliases:      []string{"คะแนนความประพฤติ", "discipline"},
		HeaderKeywords:    []string{"กองร้อย", "ตัดคะแนน", "หักคะแนน", "คงเหลือ", "หมายเหตุ"},
		HeaderMinMatches:  1,
		HeaderScanRows:    10,
		SecondaryKeywords: []string{"ครั้ง", "คะแนน", "คงเหลือ"},
		Rules: append(locationRules(),
			Rule{Role: RoleDeduction, Any: []string{"ตัดคะแนน", "หักคะแนน", "ถูกตัด"}},
			Rule{Role: RoleTotal, Any: []string{"คงเหลือ", "รวม"}},
		),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
			{Role: RoleDeduction, Index: 3},
			{Role: RoleTotal, Index: 4},
			{Role: RoleNote, Index: 5},
		},
		Required:     []Role{RoleCompany, RoleTotal},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RoleDeduction, Column: "deducted_points"},
			{Role: RoleTotal, Column: "remaining_points"},
		},
		NoteHeaderKeywords: noteHeaders,
		MaxRow:             199,
		Table:              "discipline_scores",
	}
}

// FitnessDomain is the physical fitness test.
func FitnessDomain() Domain {
	return Domain{
		Name:              Fitness,
		Title:             "ผลการทดสอบสมรรถภาพร่างกาย",
		SheetName:         "สมรรถภาพร่างกาย",
		SheetAliases:      []string{"ทดสอบร่างกาย", "fitness"},
		HeaderKeywords:    []string{"กองพัน", "กองร้อย", "ดันพื้น", "ลุกนั่ง", "วิ่ง", "รวม", "เฉลี่ย"},
		HeaderMinMatches:  2,
		HeaderScanRows:    20,
		SecondaryKeywords: []string{"ครั้ง", "นาที", "คะแนน", "ดันพื้น", "ลุกนั่ง", "วิ่ง"},
		Rules: append(locationRules(),
			Rule{Role: RolePlatoon, Any: []string{"หมวด"}},
			Rule{Role: RolePushUp, Any: []string{"ดันพื้น"}},
			Rule{Role: RoleSitUp, Any: []string{"ลุกนั่ง"}},
			Rule{Role: RoleRun, Any: []string{"วิ่ง"}, None: []string{"เวลา", "นาที"}},
			Rule{Role: RoleAverage, Any: []string{"เฉลี่ย"}},
			totalRule(),
		),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
		},
		Required:     []Role{RoleCompany, RoleTotal},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RolePushUp, Column: "push_up_score"},
			{Role: RoleSitUp, Column: "sit_up_score"},
			{Role: RoleRun, Column: "run_score"},
			{Role: RoleTotal, Column: "total_score"},
			{Role: RoleAverage, Column: "average_score"},
		},
		NoteHeaderKeywords: noteHeaders,
		Table:              "fitness_scores",
	}
}

// MeritDomain is the personal merit record.
func MeritDomain() Domain {
	return Domain{
		Name:              Merit,
		Title:             "ผลงานส่วนบุคคล",
		SheetName:         "ผลงานส่วนบุคคล",
		SheetAliases:      []string{"ความดีความชอบ", "merit"},
		HeaderKeywords:    []string{"กองร้อย", "คะแนนความดี", "คะแนนผลงาน", "รวม"},
		HeaderMinMatches:  1,
		HeaderScanRows:    10,
		SecondaryKeywords: []string{"คะแนน", "รวม"},
		Rules: append(locationRules(),
			Rule{Role: RoleMerit, Any: []string{"ความดี", "ผลงาน"}, None: []string{"รวม"}},
			totalRule(),
		),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
			{Role: RoleMerit, Index: 3},
			{Role: RoleNote, Index: 5},
		},
		Required:     []Role{RoleCompany, RoleMerit},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RoleMerit, Column: "merit_score"},
			{Role: RoleTotal, Column: "total_score"},
		},
		NoteHeaderKeywords: noteHeaders,
		Table:              "merit_scores",
	}
}

// ExamDomain is the written examination result.
func ExamDomain() Domain {
	return Domain{
		Name:              Exam,
		Title:             "ผลการสอบ",
		SheetName:         "ผลการสอบ",
		SheetAliases:      []string{"สอบ", "exam"},
		HeaderKeywords:    []string{"ลำดับ", "กองพัน", "กองร้อย", "คะแนนเต็ม", "คะแนนที่ได้", "ร้อยละ", "หมายเหตุ"},
		HeaderMinMatches:  2,
		HeaderScanRows:    12,
		SecondaryKeywords: []string{"เต็ม", "ที่ได้", "ร้อยละ"},
		Rules: append(locationRules(),
			Rule{Role: RolePlatoon, Any: []string{"หมวด"}},
			Rule{Role: RoleFullScore, All: []string{"คะแนน", "เต็ม"}},
			percentRule(),
			Rule{Role: RoleScore, Any: []string{"คะแนนที่ได้", "คะแนนสอบ", "ได้"}},
		),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
		},
		Required:     []Role{RoleCompany, RoleScore},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RoleScore, Column: "exam_score"},
			{Role: RoleFullScore, Column: "full_score"},
			{Role: RolePercent, Column: "percent_score"},
		},
		NoteHeaderKeywords: noteHeaders,
		MaxRow:             299,
		Table:              "exam_scores",
	}
}

// EvaluationDomain is the generic evaluation sheet used by ad hoc assessments.
func EvaluationDomain() Domain {
	return Domain{
		Name:              Evaluation,
		Title:             "ผลการประเมิน",
		SheetName:         "ผลการประเมิน",
		SheetAliases:      []string{"ประเมิน", "evaluation"},
		HeaderKeywords:    []string{"กองพัน", "กองร้อย", "คะแนน", "รวม", "ร้อยละ", "หมายเหตุ"},
		HeaderMinMatches:  1,
		SecondaryKeywords: []string{"คะแนน", "รวม", "ร้อยละ", "เต็ม"},
		Rules:             append(locationRules(), percentRule(), totalRule()),
		Fallbacks: []Fallback{
			{Role: RoleOrder, Index: 0},
			{Role: RoleBattalion, Index: 1},
			{Role: RoleCompany, Index: 2},
			{Role: RoleTotal, Index: 3},
			{Role: RoleNote, Index: 5},
		},
		Required:     []Role{RoleCompany, RoleTotal},
		CarryForward: []Role{RoleBattalion, RoleCompany},
		Scores: []ScoreColumn{
			{Role: RoleTotal, Column: "total_score"},
			{Role: RolePercent, Column: "percent_score"},
		},
		NoteHeaderKeywords: noteHeaders,
		Table:              "evaluation_scores",
	}
}
