package culturalctx

// regionalNorm holds the honorific/relationship-term/style table for one
// language, keyed by ISO 639-3 tag to match vic.SupportedTargetLanguages.
type regionalNorm struct {
	honorifics        map[RelationshipType][]string
	relationshipTerms map[RelationshipType][]string
	style             NegotiationStyle
	regions           []string
}

// defaultNorm is used for languages with no dedicated entry below (and is
// itself keyed under "eng" for pan-India business communication).
var defaultNorm = regionalNorm{
	honorifics: map[RelationshipType][]string{
		NewCustomer:      {"Sir", "Madam"},
		RepeatCustomer:   {"Sir", "Friend"},
		FrequentPartner:  {"Friend", "Partner"},
	},
	relationshipTerms: map[RelationshipType][]string{
		NewCustomer:     {"you", "your"},
		RepeatCustomer:  {"you", "your"},
		FrequentPartner: {"you", "your"},
	},
	style:   BusinessFocused,
	regions: []string{"Pan-India"},
}

// regionalNorms maps ISO 639-3 tags to cultural norms for the languages
// with dedicated treatment; languages not present fall back to
// defaultNorm (English/pan-India business style), matching the original
// engine's "default to English if language not found" rule.
var regionalNorms = map[string]regionalNorm{
	"hin": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"जी", "साहब", "भाई साहब"},
			RepeatCustomer:  {"भाई", "दोस्त", "जी"},
			FrequentPartner: {"भाई", "मित्र", "यार"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"आप", "आपका"},
			RepeatCustomer:  {"आप", "तुम्हारा"},
			FrequentPartner: {"तुम", "तेरा"},
		},
		style:   RelationshipFocused,
		regions: []string{"Delhi", "Uttar Pradesh", "Madhya Pradesh", "Rajasthan", "Haryana", "Himachal Pradesh"},
	},
	"tel": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"గారు", "అన్నయ్య", "దొరగారు"},
			RepeatCustomer:  {"అన్నయ్య", "తమ్ముడు", "గారు"},
			FrequentPartner: {"అన్నయ్య", "బావ", "మిత్రమా"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"మీరు", "మీ"},
			RepeatCustomer:  {"మీరు", "నీవు"},
			FrequentPartner: {"నీవు", "నీ"},
		},
		style:   RelationshipFocused,
		regions: []string{"Andhra Pradesh", "Telangana"},
	},
	"tam": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"அவர்கள்", "ஐயா", "அண்ணா"},
			RepeatCustomer:  {"அண்ணா", "தம்பி", "நண்பா"},
			FrequentPartner: {"நண்பா", "மச்சி", "தோழா"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"நீங்கள்", "உங்கள்"},
			RepeatCustomer:  {"நீங்கள்", "உன்"},
			FrequentPartner: {"நீ", "உன்"},
		},
		style:   Direct,
		regions: []string{"Tamil Nadu", "Puducherry"},
	},
	"kan": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"ಅವರೇ", "ಸರ್", "ಅಣ್ಣ"},
			RepeatCustomer:  {"ಅಣ್ಣ", "ತಮ್ಮ", "ಗೆಳೆಯ"},
			FrequentPartner: {"ಗೆಳೆಯ", "ಮಿತ್ರ", "ಸ್ನೇಹಿತ"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"ನೀವು", "ನಿಮ್ಮ"},
			RepeatCustomer:  {"ನೀವು", "ನಿನ್ನ"},
			FrequentPartner: {"ನೀನು", "ನಿನ್ನ"},
		},
		style:   BusinessFocused,
		regions: []string{"Karnataka"},
	},
	"mar": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"साहेब", "दादा", "भाऊ"},
			RepeatCustomer:  {"दादा", "भाऊ", "मित्रा"},
			FrequentPartner: {"मित्रा", "भाऊ", "बंधू"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"तुम्ही", "तुमचा"},
			RepeatCustomer:  {"तुम्ही", "तुझा"},
			FrequentPartner: {"तू", "तुझा"},
		},
		style:   BusinessFocused,
		regions: []string{"Maharashtra", "Goa"},
	},
	"ben": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"বাবু", "দাদা", "ভাই"},
			RepeatCustomer:  {"দাদা", "ভাই", "বন্ধু"},
			FrequentPartner: {"বন্ধু", "ভাই", "মিত্র"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"আপনি", "আপনার"},
			RepeatCustomer:  {"আপনি", "তোমার"},
			FrequentPartner: {"তুমি", "তোমার"},
		},
		style:   RelationshipFocused,
		regions: []string{"West Bengal", "Tripura"},
	},
	"guj": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"સાહેબ", "ભાઈ", "શેઠ"},
			RepeatCustomer:  {"ભાઈ", "મિત્ર", "સાથી"},
			FrequentPartner: {"મિત્ર", "ભાઈ", "દોસ્ત"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"તમે", "તમારું"},
			RepeatCustomer:  {"તમે", "તારું"},
			FrequentPartner: {"તું", "તારું"},
		},
		style:   BusinessFocused,
		regions: []string{"Gujarat", "Dadra and Nagar Haveli", "Daman and Diu"},
	},
	"pan": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"ਜੀ", "ਸਾਹਿਬ", "ਭਰਾ"},
			RepeatCustomer:  {"ਭਰਾ", "ਯਾਰ", "ਮਿੱਤਰ"},
			FrequentPartner: {"ਯਾਰ", "ਮਿੱਤਰ", "ਦੋਸਤ"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"ਤੁਸੀਂ", "ਤੁਹਾਡਾ"},
			RepeatCustomer:  {"ਤੁਸੀਂ", "ਤੇਰਾ"},
			FrequentPartner: {"ਤੂੰ", "ਤੇਰਾ"},
		},
		style:   Direct,
		regions: []string{"Punjab", "Chandigarh"},
	},
	"mal": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"സാർ", "ചേട്ടാ", "സാഹിബ്"},
			RepeatCustomer:  {"ചേട്ടാ", "സുഹൃത്തേ", "സഖാവേ"},
			FrequentPartner: {"സുഹൃത്തേ", "കൂട്ടുകാരാ", "സഖാവേ"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"താങ്കൾ", "താങ്കളുടെ"},
			RepeatCustomer:  {"നിങ്ങൾ", "നിങ്ങളുടെ"},
			FrequentPartner: {"നീ", "നിന്റെ"},
		},
		style:   Indirect,
		regions: []string{"Kerala", "Lakshadweep"},
	},
	"urd": {
		honorifics: map[RelationshipType][]string{
			NewCustomer:     {"جناب", "صاحب", "بھائی"},
			RepeatCustomer:  {"بھائی", "دوست", "یار"},
			FrequentPartner: {"یار", "دوست", "ساتھی"},
		},
		relationshipTerms: map[RelationshipType][]string{
			NewCustomer:     {"آپ", "آپ کا"},
			RepeatCustomer:  {"آپ", "تمہارا"},
			FrequentPartner: {"تم", "تیرا"},
		},
		style:   RelationshipFocused,
		regions: []string{"Jammu and Kashmir", "Telangana", "Bihar"},
	},
	"eng": defaultNorm,
}

func lookupNorm(language string) regionalNorm {
	if n, ok := regionalNorms[language]; ok {
		return n
	}
	return defaultNorm
}

func (n regionalNorm) honorificsFor(t RelationshipType) []string {
	if h, ok := n.honorifics[t]; ok {
		return h
	}
	return n.honorifics[NewCustomer]
}

func (n regionalNorm) relationshipTermsFor(t RelationshipType) []string {
	if r, ok := n.relationshipTerms[t]; ok {
		return r
	}
	return n.relationshipTerms[NewCustomer]
}
