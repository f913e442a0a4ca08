package schema

import "strings"

// jobPostingFields is the ordered schema for the job-posting assistant.
// The stored value for vocabulary fields is the raw user utterance, not
// the canonical term; downstream consumers rely on that.
var jobPostingFields = []FieldSpec{
	{
		Key:      "department",
		Label:    "모집 부서",
		Kind:     KindText,
		Required: true,
		Prompt:   "어떤 직무를 채용하시나요?",
		Extractor: ExtractorConfig{
			Mode: ModeVocabulary,
			Terms: []Term{
				{Canonical: "프론트엔드", Synonyms: []string{"프론트", "fe", "front", "frontend", "리액트", "react"}},
				{Canonical: "백엔드", Synonyms: []string{"서버", "be", "back", "backend", "스프링"}},
				{Canonical: "풀스택", Synonyms: []string{"fullstack", "full-stack", "풀스텍"}},
				{Canonical: "모바일", Synonyms: []string{"앱", "ios", "안드로이드", "android", "mobile"}},
				{Canonical: "디자인", Synonyms: []string{"디자이너", "ui", "ux", "design"}},
				{Canonical: "기획", Synonyms: []string{"pm", "po", "서비스기획"}},
				{Canonical: "마케팅", Synonyms: []string{"마케터", "marketing"}},
				{Canonical: "영업", Synonyms: []string{"세일즈", "sales"}},
				{Canonical: "인사", Synonyms: []string{"hr", "채용담당"}},
			},
			ClarifyPrompt: "조금 더 구체적으로 알려주세요. 예를 들어 개발 직군이라면 프론트엔드, 백엔드, 풀스택, 모바일 중 어느 쪽인가요?",
		},
	},
	{
		Key:      "headcount",
		Label:    "모집 인원",
		Kind:     KindText,
		Required: true,
		Prompt:   "몇 명을 채용하시나요?",
		Extractor: ExtractorConfig{
			Mode: ModeNumeric,
			Unit: "명",
		},
	},
	{
		Key:      "mainDuties",
		Label:    "주요 업무",
		Kind:     KindLongText,
		Required: true,
		Prompt:   "주요 업무를 알려주세요.",
		Extractor: ExtractorConfig{
			Mode: ModePassthrough,
		},
	},
	{
		Key:      "workHours",
		Label:    "근무 시간",
		Kind:     KindText,
		Required: true,
		Prompt:   "근무 시간은 어떻게 되나요?",
		Extractor: ExtractorConfig{
			Mode: ModeKeyword,
			Keywords: []KeywordRule{
				{Triggers: []string{"유연", "flex", "자율"}, Canonical: "유연근무제"},
				{Triggers: []string{"재택", "원격", "remote"}, Canonical: "재택근무"},
			},
		},
	},
	{
		Key:      "location",
		Label:    "근무 위치",
		Kind:     KindText,
		Required: true,
		Prompt:   "근무 위치는 어디인가요?",
		Extractor: ExtractorConfig{
			Mode: ModeKeyword,
			Keywords: []KeywordRule{
				{Triggers: []string{"재택", "원격", "remote"}, Canonical: "재택근무"},
			},
		},
	},
	{
		Key:      "salary",
		Label:    "급여",
		Kind:     KindText,
		Required: true,
		Prompt:   "급여 조건을 알려주세요.",
		Extractor: ExtractorConfig{
			Mode: ModePassthrough,
		},
	},
	{
		Key:      "deadline",
		Label:    "마감일",
		Kind:     KindDate,
		Required: true,
		Prompt:   "지원 마감일은 언제인가요?",
		Extractor: ExtractorConfig{
			Mode: ModePassthrough,
		},
	},
	{
		Key:      "contactEmail",
		Label:    "담당자 이메일",
		Kind:     KindEmail,
		Required: true,
		Prompt:   "담당자 이메일을 알려주세요.",
		// Email format is validated by the form UI, not here.
		Extractor: ExtractorConfig{
			Mode: ModePassthrough,
		},
		Validator: func(v string) bool {
			return strings.TrimSpace(v) != ""
		},
	},
}
