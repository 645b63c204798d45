package chat

import "strings"

// The assistant is fully scripted: canned responses per language and session
// stage, no model calls. English is the fallback for every table.

var welcomeMessages = map[string]map[string]string{
	"en": {
		SessionHealthConsultation: "Hello! I'm your AI health assistant. I'm here to help you with your health concerns. Please tell me about your symptoms or health questions.",
		SessionEmergency:          "This is emergency assistance. Please describe your emergency situation immediately. If this is life-threatening, please call 108 right away.",
		SessionGeneral:            "Hello! I'm here to help you with health information and guidance. How can I assist you today?",
	},
	"hi": {
		SessionHealthConsultation: "नमस्ते! मैं आपका AI स्वास्थ्य सहायक हूं। मैं आपकी स्वास्थ्य समस्याओं में मदद करने के लिए यहां हूं। कृपया अपने लक्षणों या स्वास्थ्य प्रश्नों के बारे में बताएं।",
		SessionEmergency:          "यह आपातकालीन सहायता है। कृपया तुरंत अपनी आपातकालीन स्थिति का वर्णन करें। यदि यह जीवन के लिए खतरनाक है, तो कृपया तुरंत 108 पर कॉल करें।",
		SessionGeneral:            "नमस्ते! मैं स्वास्थ्य जानकारी और मार्गदर्शन में आपकी मदद करने के लिए यहां हूं। आज मैं आपकी कैसे सहायता कर सकता हूं?",
	},
	"or": {
		SessionHealthConsultation: "ନମସ୍କାର! ମୁଁ ଆପଣଙ୍କର AI ସ୍ୱାସ୍ଥ୍ୟ ସହାୟକ। ମୁଁ ଆପଣଙ୍କର ସ୍ୱାସ୍ଥ୍ୟ ସମସ୍ୟାରେ ସାହାଯ୍ୟ କରିବା ପାଇଁ ଏଠାରେ ଅଛି। ଦୟାକରି ଆପଣଙ୍କର ଲକ୍ଷଣ କିମ୍ବା ସ୍ୱାସ୍ଥ୍ୟ ପ୍ରଶ୍ନ ବିଷୟରେ କୁହନ୍ତୁ।",
		SessionEmergency:          "ଏହା ଜରୁରୀକାଲୀନ ସହାୟତା। ଦୟାକରି ତୁରନ୍ତ ଆପଣଙ୍କର ଜରୁରୀକାଲୀନ ପରିସ୍ଥିତି ବର୍ଣ୍ଣନା କରନ୍ତୁ। ଯଦି ଏହା ଜୀବନ ପ୍ରତି ବିପଦଜନକ, ତେବେ ଦୟାକରି ତୁରନ୍ତ 108 କୁ କଲ କରନ୍ତୁ।",
		SessionGeneral:            "ନମସ୍କାର! ମୁଁ ସ୍ୱାସ୍ଥ୍ୟ ସୂଚନା ଏବଂ ମାର୍ଗଦର୍ଶନରେ ଆପଣଙ୍କୁ ସାହାଯ୍ୟ କରିବା ପାଇଁ ଏଠାରେ ଅଛି। ଆଜି ମୁଁ ଆପଣଙ୍କୁ କିପରି ସାହାଯ୍ୟ କରିପାରିବି?",
	},
}

// WelcomeMessage opens a session in the caller's language.
func WelcomeMessage(language, sessionType string) string {
	byType, ok := welcomeMessages[language]
	if !ok {
		byType = welcomeMessages["en"]
	}
	if msg, ok := byType[sessionType]; ok {
		return msg
	}
	return byType[SessionGeneral]
}

var healthKeywords = map[string]map[string]string{
	"en": {
		"fever": "fever", "headache": "headache", "cough": "cough",
		"pain":  "pain", "tired": "fatigue", "weak": "weakness",
		"dizzy": "dizziness", "nausea": "nausea", "vomit": "vomiting",
	},
	"hi": {
		"बुखार": "fever", "सिरदर्द": "headache", "खांसी": "cough",
		"दर्द":  "pain", "थकान": "fatigue", "कमजोर": "weakness",
		"चक्कर": "dizziness", "उल्टी": "nausea",
	},
	"or": {
		"ଜ୍ୱର":     "fever", "ମୁଣ୍ଡବିନ୍ଧା": "headache", "କାଶ": "cough",
		"ଯନ୍ତ୍ରଣା": "pain", "ଦୁର୍ବଳତା": "weakness",
	},
}

// ExtractHealthKeywords pulls normalized symptom names out of a chat
// message.
func ExtractHealthKeywords(message, language string) []string {
	keywords, ok := healthKeywords[language]
	if !ok {
		keywords = healthKeywords["en"]
	}
	lower := strings.ToLower(message)
	var found []string
	for keyword, symptom := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, symptom)
		}
	}
	return found
}

var symptomResponses = map[string][]string{
	"en": {
		"I understand you're experiencing some symptoms. Can you tell me more about when these symptoms started?",
		"Thank you for sharing that information. Are you experiencing any other symptoms along with this?",
		"Based on what you've told me, I recommend consulting with your ASHA worker or visiting a healthcare facility.",
		"It's important to monitor these symptoms. Have you taken your temperature or checked any vital signs?",
	},
	"hi": {
		"मैं समझ गया हूं कि आप कुछ लक्षणों का अनुभव कर रहे हैं। क्या आप मुझे बता सकते हैं कि ये लक्षण कब शुरू हुए?",
		"इस जानकारी को साझा करने के लिए धन्यवाद। क्या आप इसके साथ कोई अन्य लक्षण भी महसूस कर रहे हैं?",
		"आपने जो बताया है उसके आधार पर, मैं आपके ASHA कार्यकर्ता से सलाह लेने या स्वास्थ्य सुविधा में जाने की सलाह देता हूं।",
		"इन लक्षणों पर नज़र रखना महत्वपूर्ण है। क्या आपने अपना तापमान लिया है या कोई महत्वपूर्ण संकेत जांचे हैं?",
	},
}

// symptomResponse advances through the assessment script, pinned to the last
// line once the symptom list outgrows it.
func symptomResponse(ctx Context, language string) string {
	lines, ok := symptomResponses[language]
	if !ok {
		lines = symptomResponses["en"]
	}
	idx := len(ctx.UserSymptoms)
	if idx > len(lines)-1 {
		idx = len(lines) - 1
	}
	return lines[idx]
}

var emergencyResponses = map[string]string{
	"en": "This sounds like it could be an emergency. Please call 108 immediately for ambulance service, or contact your nearest ASHA worker. If you're experiencing severe symptoms, don't wait - seek immediate medical attention.",
	"hi": "यह एक आपातकाल हो सकता है। कृपया एम्बुलेंस सेवा के लिए तुरंत 108 पर कॉल करें, या अपने निकटतम ASHA कार्यकर्ता से संपर्क करें। यदि आप गंभीर लक्षणों का अनुभव कर रहे हैं, तो प्रतीक्षा न करें - तुरंत चिकित्सा सहायता लें।",
	"or": "ଏହା ଏକ ଜରୁରୀକାଳୀନ ପରିସ୍ଥିତି ହୋଇପାରେ। ଦୟାକରି ଆମ୍ବୁଲାନ୍ସ ସେବା ପାଇଁ ତୁରନ୍ତ 108 କୁ କଲ କରନ୍ତୁ, କିମ୍ବା ଆପଣଙ୍କର ନିକଟତମ ASHA କର୍ମୀଙ୍କ ସହିତ ଯୋଗାଯୋଗ କରନ୍ତୁ।",
}

func emergencyResponse(language string) string {
	if r, ok := emergencyResponses[language]; ok {
		return r
	}
	return emergencyResponses["en"]
}

var generalResponses = map[string]string{
	"en": "I'm here to help with your health concerns. Please feel free to share any symptoms you're experiencing, ask about health conditions, or inquire about healthcare services in your area.",
	"hi": "मैं आपकी स्वास्थ्य चिंताओं में मदद करने के लिए यहां हूं। कृपया बेझिझक कोई भी लक्षण साझा करें जिसका आप अनुभव कर रहे हैं, स्वास्थ्य स्थितियों के बारे में पूछें, या अपने क्षेत्र में स्वास्थ्य सेवाओं के बारे में पूछताछ करें।",
	"or": "ମୁଁ ଆପଣଙ୍କର ସ୍ୱାସ୍ଥ୍ୟ ଚିନ୍ତାରେ ସାହାଯ୍ୟ କରିବା ପାଇଁ ଏଠାରେ ଅଛି। ଦୟାକରି ଆପଣ ଅନୁଭବ କରୁଥିବା କୌଣସି ଲକ୍ଷଣ ସାଝା କରନ୍ତୁ, ସ୍ୱାସ୍ଥ୍ୟ ଅବସ୍ଥା ବିଷୟରେ ପଚାରନ୍ତୁ।",
}

func generalResponse(language string) string {
	if r, ok := generalResponses[language]; ok {
		return r
	}
	return generalResponses["en"]
}

var suggestionLists = map[string][]string{
	"en": {
		"Tell me about your symptoms",
		"Find nearby healthcare facilities",
		"Check government health schemes",
		"Emergency assistance",
		"Health tips and advice",
	},
	"hi": {
		"अपने लक्षणों के बारे में बताएं",
		"नजदीकी स्वास्थ्य सुविधाएं खोजें",
		"सरकारी स्वास्थ्य योजनाएं देखें",
		"आपातकालीन सहायता",
		"स्वास्थ्य सुझाव और सलाह",
	},
}

func suggestionsFor(language string) []string {
	if s, ok := suggestionLists[language]; ok {
		return s
	}
	return suggestionLists["en"]
}

// actionsFor offers symptom analysis only once symptoms have come up;
// facility lookup and emergency help are always on the table.
func actionsFor(keywords []string) []Action {
	var actions []Action
	if len(keywords) > 0 {
		actions = append(actions, Action{
			Type:        "symptom_analysis",
			Label:       "Analyze Symptoms",
			Description: "Get AI analysis of your symptoms",
		})
	}
	actions = append(actions,
		Action{
			Type:        "find_facilities",
			Label:       "Find Healthcare",
			Description: "Locate nearby healthcare facilities",
		},
		Action{
			Type:        "emergency_alert",
			Label:       "Emergency Help",
			Description: "Get immediate emergency assistance",
		},
	)
	return actions
}

// Reply is one scripted assistant turn.
type Reply struct {
	Content     string
	Suggestions []string
	Actions     []Action
	Context     Context
}

// ScriptReply produces the assistant's turn for a user message, threading the
// session context forward.
func ScriptReply(message string, ctx Context, language string) Reply {
	keywords := ExtractHealthKeywords(message, language)
	if len(keywords) > 0 {
		ctx.UserSymptoms = append(ctx.UserSymptoms, keywords...)
		ctx.CurrentTopic = "symptom_assessment"
	}

	var content string
	lower := strings.ToLower(message)
	switch {
	case ctx.CurrentTopic == "symptom_assessment":
		content = symptomResponse(ctx, language)
	case strings.Contains(lower, "emergency") || strings.Contains(lower, "urgent"):
		content = emergencyResponse(language)
	default:
		content = generalResponse(language)
	}

	return Reply{
		Content:     content,
		Suggestions: suggestionsFor(language),
		Actions:     actionsFor(keywords),
		Context:     ctx,
	}
}
