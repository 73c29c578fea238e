package onboarding

// catalog maps ISO 639-3 language codes to per-step prompt templates.
// Templates may reference {name} and {location} placeholders, filled in
// by PromptFor.
var catalog = map[string]map[Step]string{
	"hin": {
		Welcome:              "नमस्ते! मल्टीलिंगुअल मंडी में आपका स्वागत है। मैं आपको पंजीकरण में मदद करूंगा।",
		LanguageConfirmation: "क्या आप हिंदी में जारी रखना चाहते हैं? कृपया हां या नहीं कहें।",
		CollectName:          "कृपया अपना नाम बताएं।",
		CollectLocation:      "कृपया अपना स्थान बताएं - राज्य और जिला।",
		CollectPhone:         "कृपया अपना मोबाइल नंबर बताएं।",
		ExplainDataUsage:     "हम आपका नाम, स्थान और आवाज़ का डेटा सुरक्षित रखेंगे। यह केवल आपकी पहचान और बेहतर सेवा के लिए उपयोग होगा।",
		CollectConsent:       "क्या आप इस डेटा उपयोग के लिए सहमत हैं? कृपया हां या नहीं कहें।",
		CreateVoiceprint:     "अब मैं आपकी आवाज़ की पहचान बनाऊंगा। कृपया यह वाक्य तीन बार बोलें: मेरा नाम {name} है और मैं {location} से हूं।",
		Tutorial:             "पंजीकरण पूर्ण! क्या आप ट्यूटोरियल सुनना चाहते हैं?",
		Complete:             "धन्यवाद! आपका खाता तैयार है। शुभकामनाएं!",
	},
	"eng": {
		Welcome:              "Hello! Welcome to Multilingual Mandi. I will help you register.",
		LanguageConfirmation: "Would you like to continue in English? Please say yes or no.",
		CollectName:          "Please tell me your name.",
		CollectLocation:      "Please tell me your location - state and district.",
		CollectPhone:         "Please tell me your mobile number.",
		ExplainDataUsage:     "We will securely store your name, location, and voice data. This is only used for your identification and better service.",
		CollectConsent:       "Do you agree to this data usage? Please say yes or no.",
		CreateVoiceprint:     "Now I will create your voice profile. Please say the following sentence three times: My name is {name} and I am from {location}.",
		Tutorial:             "Registration complete! Would you like to hear a tutorial?",
		Complete:             "Thank you! Your account is ready. Best wishes!",
	},
	"tel": {
		Welcome:              "నమస్కారం! మల్టీలింగ్వల్ మండికి స్వాగతం. నేను మీకు రిజిస్ట్రేషన్‌లో సహాయం చేస్తాను.",
		LanguageConfirmation: "మీరు తెలుగులో కొనసాగించాలనుకుంటున్నారా? దయచేసి అవును లేదా కాదు అని చెప్పండి.",
		CollectName:          "దయచేసి మీ పేరు చెప్పండి.",
		CollectLocation:      "దయచేసి మీ స్థానం చెప్పండి - రాష్ట్రం మరియు జిల్లా.",
		CollectPhone:         "దయచేసి మీ మొబైల్ నంబర్ చెప్పండి.",
		ExplainDataUsage:     "మేము మీ పేరు, స్థానం మరియు వాయిస్ డేటాను సురక్షితంగా నిల్వ చేస్తాము.",
		CollectConsent:       "మీరు ఈ డేటా వినియోగానికి అంగీకరిస్తున్నారా? దయచేసి అవును లేదా కాదు అని చెప్పండి.",
		CreateVoiceprint:     "ఇప్పుడు నేను మీ వాయిస్ ప్రొఫైల్‌ను సృష్టిస్తాను. దయచేసి ఈ వాక్యాన్ని మూడు సార్లు చెప్పండి: నా పేరు {name} మరియు నేను {location} నుండి వచ్చాను.",
		Tutorial:             "రిజిస్ట్రేషన్ పూర్తయింది! మీరు ట్యుటోరియల్ వినాలనుకుంటున్నారా?",
		Complete:             "ధన్యవాదాలు! మీ ఖాతా సిద్ధంగా ఉంది. శుభాకాంక్షలు!",
	},
	"tam": {
		Welcome:              "வணக்கம்! பன்மொழி மண்டிக்கு வரவேற்கிறோம். நான் உங்களுக்கு பதிவு செய்ய உதவுவேன்.",
		LanguageConfirmation: "தமிழில் தொடர விரும்புகிறீர்களா? தயவுசெய்து ஆம் அல்லது இல்லை என்று சொல்லுங்கள்.",
		CollectName:          "தயவுசெய்து உங்கள் பெயரைச் சொல்லுங்கள்.",
		CollectLocation:      "தயவுசெய்து உங்கள் இடத்தைச் சொல்லுங்கள் - மாநிலம் மற்றும் மாவட்டம்.",
		CollectPhone:         "தயவுசெய்து உங்கள் மொபைல் எண்ணைச் சொல்லுங்கள்.",
		ExplainDataUsage:     "உங்கள் பெயர், இடம் மற்றும் குரல் தரவை நாங்கள் பாதுகாப்பாக சேமிப்போம்.",
		CollectConsent:       "இந்த தரவு பயன்பாட்டிற்கு நீங்கள் ஒப்புக்கொள்கிறீர்களா?",
		CreateVoiceprint:     "இப்போது நான் உங்கள் குரல் சுயவிவரத்தை உருவாக்குவேன். தயவுசெய்து இந்த வாக்கியத்தை மூன்று முறை சொல்லுங்கள்: என் பெயர் {name} மற்றும் நான் {location} இலிருந்து வருகிறேன்.",
		Tutorial:             "பதிவு முடிந்தது! நீங்கள் பயிற்சியைக் கேட்க விரும்புகிறீர்களா?",
		Complete:             "நன்றி! உங்கள் கணக்கு தயார். வாழ்த்துக்கள்!",
	},
}

// SupportedLanguages returns the ISO 639-3 language codes with a complete
// prompt catalog entry.
func SupportedLanguages() []string {
	out := make([]string, 0, len(catalog))
	for lang := range catalog {
		out = append(out, lang)
	}
	return out
}
