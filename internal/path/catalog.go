package path

// templateInfo describes one supported template family: its display name
// per language, which doubles as the template file name on disk.
type templateInfo struct {
	displayNames map[string]string
}

// Template identifiers accepted in fill requests.
const (
	DHFIndex                     = "DHF_INDEX"
	PTFIndex                     = "PTF_INDEX"
	ESIndividualTestSpec         = "ES_INDIVIDUAL_TEST_SPEC"
	ESIndividualTestResult       = "ES_INDIVIDUAL_TEST_RESULT"
	PPIndividualTestSpec         = "PP_INDIVIDUAL_TEST_SPEC"
	PPIndividualTestResult       = "PP_INDIVIDUAL_TEST_RESULT"
	ESVerificationPlan           = "ES_VERIFICATION_PLAN"
	ESVerificationResult         = "ES_VERIFICATION_RESULT"
	PPVerificationPlan           = "PP_VERIFICATION_PLAN"
	PPVerificationResult         = "PP_VERIFICATION_RESULT"
	BasicSpecification           = "BASIC_SPECIFICATION"
	FollowUpDRMinutes            = "FOLLOW_UP_DR_MINUTES"
	LabelingSpecification        = "LABELING_SPECIFICATION"
	ProductEnvironmentAssessment = "PRODUCT_ENVIRONMENT_ASSESSMENT"
	PackagingDesignSpecification = "PACKAGING_DESIGN_SPECIFICATION"
	UserManualSpecification      = "USER_MANUAL_SPECIFICATION"
	ProjectPlan                  = "PROJECT_PLAN"
)

var catalog = map[string]templateInfo{
	DHFIndex: {displayNames: map[string]string{
		"zh": "文件･图纸一览",
		"ja": "ドキュメント・図面一覧",
		"en": "Document and Drawing Index",
	}},
	PTFIndex: {displayNames: map[string]string{
		"zh": "PTF INDEX",
		"ja": "PTF INDEX",
		"en": "PTF Index",
	}},
	ESIndividualTestSpec: {displayNames: map[string]string{
		"zh": "个别试验要项书",
		"ja": "ES個別試験要項書",
		"en": "ES Individual Test Specification",
	}},
	ESIndividualTestResult: {displayNames: map[string]string{
		"zh": "个别试验要项书",
		"ja": "ES個別試験結果書",
		"en": "ES Individual Test Result",
	}},
	PPIndividualTestSpec: {displayNames: map[string]string{
		"zh": "个别试验要项书",
		"ja": "PP個別試験要項書",
		"en": "PP Individual Test Specification",
	}},
	PPIndividualTestResult: {displayNames: map[string]string{
		"zh": "个别试验要项书",
		"ja": "PP個別試験結果書",
		"en": "PP Individual Test Result",
	}},
	ESVerificationPlan: {displayNames: map[string]string{
		"zh": "检证计划・结果书",
		"ja": "ES検証計画書",
		"en": "ES Verification Plan",
	}},
	ESVerificationResult: {displayNames: map[string]string{
		"zh": "检证计划・结果书",
		"ja": "ES検証結果書",
		"en": "ES Verification Result",
	}},
	PPVerificationPlan: {displayNames: map[string]string{
		"zh": "检证计划・结果书",
		"ja": "PP検証計画書",
		"en": "PP Verification Plan",
	}},
	PPVerificationResult: {displayNames: map[string]string{
		"zh": "检证计划・结果书",
		"ja": "PP検証結果書",
		"en": "PP Verification Result",
	}},
	BasicSpecification: {displayNames: map[string]string{
		"zh": "基本规格书",
		"ja": "基本仕様書",
		"en": "Basic Specification",
	}},
	FollowUpDRMinutes: {displayNames: map[string]string{
		"zh": "跟进DR会议记录",
		"ja": "フォローアップDR議事録",
		"en": "Follow-up DR Minutes",
	}},
	LabelingSpecification: {displayNames: map[string]string{
		"zh": "标签仕样书-仕样确认书",
		"ja": "ラベル仕様書",
		"en": "Labeling Specification",
	}},
	ProductEnvironmentAssessment: {displayNames: map[string]string{
		"zh": "基本机种产品环境评估要項書-結果書",
		"ja": "基本機種製品環境アセスメント要項書／結果書",
		"en": "Product Environment Assessment",
	}},
	PackagingDesignSpecification: {displayNames: map[string]string{
		"zh": "包装设计仕样书",
		"ja": "包装設計仕様書",
		"en": "Packaging Design Specification",
	}},
	UserManualSpecification: {displayNames: map[string]string{
		"zh": "使用说明书仕样书",
		"ja": "取扱説明書仕様書",
		"en": "User Manual Specification",
	}},
	ProjectPlan: {displayNames: map[string]string{
		"zh": "项目计划书",
		"ja": "プロジェクト計画書",
		"en": "Project Plan",
	}},
}

// Known reports whether template is a supported identifier.
func Known(template string) bool {
	_, ok := catalog[template]
	return ok
}

// DisplayName returns the template file name for the given language,
// falling back to the Chinese name.
func DisplayName(template, language string) string {
	info, ok := catalog[template]
	if !ok {
		return template
	}
	if name, ok := info.displayNames[language]; ok && name != "" {
		return name
	}
	return info.displayNames["zh"]
}
