package annotate

import "m2align/internal/align"

type entry struct {
	pos, lemma string
}

// closed holds the closed word classes plus the irregular forms the suffix
// rules cannot recover.
var closed = map[string]entry{}

func add(pos string, words ...string) {
	for _, w := range words {
		closed[w] = entry{pos: pos, lemma: w}
	}
}

func forms(pos, lemma string, words ...string) {
	for _, w := range words {
		closed[w] = entry{pos: pos, lemma: lemma}
	}
}

func init() {
	add(align.DET, "a", "an", "the", "this", "that", "these", "those", "some", "any", "each",
		"every", "no", "another", "either", "neither", "all", "both", "such", "my", "your",
		"his", "its", "our", "their", "whose")
	add(align.PRON, "i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us",
		"them", "myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves",
		"mine", "yours", "hers", "ours", "theirs", "who", "whom", "what", "which", "something",
		"anything", "nothing", "everything", "someone", "anyone", "everyone", "nobody")
	add(align.ADP, "in", "on", "at", "to", "of", "for", "with", "by", "from", "about", "into",
		"onto", "over", "under", "between", "through", "during", "without", "within", "among",
		"against", "towards", "toward", "upon", "after", "before", "since", "until", "across",
		"behind", "beside", "near", "off", "out", "up", "down", "around", "than")
	add(align.CCONJ, "and", "or", "but", "nor", "yet", "so")
	add(align.SCONJ, "because", "if", "although", "though", "while", "unless", "whether",
		"whereas", "once")
	add(align.PART, "not", "n't", "'s")
	add(align.AUX, "can", "could", "will", "would", "shall", "should", "may", "might", "must",
		"'ll", "'d", "ca", "wo")
	add(align.ADV, "very", "too", "also", "just", "only", "already", "still", "never", "always",
		"often", "here", "there", "now", "then", "again", "soon", "yesterday", "today", "tomorrow")
	add(align.ADJ, "quick", "slow", "big", "small", "happy", "sad", "easy", "hard", "fast", "new",
		"old", "young", "long", "short", "high", "low", "large", "little", "great", "nice", "real",
		"quiet", "loud", "simple", "possible", "strong", "weak", "different", "important", "late",
		"free", "clear", "sure", "true", "wrong", "warm", "cold", "hot", "poor", "rich", "safe",
		"bright", "dark", "clean", "heavy", "soft", "gentle", "busy", "tired", "angry", "proud",
		"friendly", "lovely", "lonely", "ugly", "silly", "early", "likely", "daily", "lively")
	add(align.NOUN, "family", "belly", "jelly", "lily", "ally", "assembly")
	add(align.INTJ, "oh", "hello", "hi", "yes", "ok", "okay", "please", "wow")

	forms(align.VERB, "be", "be", "am", "is", "are", "was", "were", "been", "being", "'m", "'re")
	forms(align.VERB, "have", "have", "has", "had", "having", "'ve")
	forms(align.VERB, "do", "do", "does", "did", "done", "doing")
	forms(align.VERB, "go", "go", "went", "gone")
	forms(align.VERB, "eat", "ate", "eaten")
	forms(align.VERB, "see", "saw", "seen")
	forms(align.VERB, "take", "took", "taken")
	forms(align.VERB, "give", "gave", "given")
	forms(align.VERB, "write", "wrote", "written")
	forms(align.VERB, "come", "came")
	forms(align.VERB, "make", "made")
	forms(align.VERB, "buy", "bought")
	forms(align.VERB, "bring", "brought")
	forms(align.VERB, "think", "thought")
	forms(align.VERB, "teach", "taught")
	forms(align.VERB, "catch", "caught")
	forms(align.VERB, "say", "said")
	forms(align.VERB, "tell", "told")
	forms(align.VERB, "get", "got", "gotten")
	forms(align.VERB, "find", "found")
	forms(align.VERB, "know", "knew", "known")
	forms(align.VERB, "leave", "left")
	forms(align.VERB, "feel", "felt")
	forms(align.VERB, "keep", "kept")
	forms(align.VERB, "sleep", "slept")
	forms(align.VERB, "meet", "met")
	forms(align.VERB, "run", "ran")
	forms(align.VERB, "begin", "began", "begun")
	forms(align.VERB, "speak", "spoke", "spoken")
	forms(align.VERB, "become", "became")
	forms(align.NOUN, "child", "children")
	forms(align.NOUN, "man", "men")
	forms(align.NOUN, "woman", "women")
	forms(align.NOUN, "person", "people")
	forms(align.NOUN, "foot", "feet")
	forms(align.NOUN, "tooth", "teeth")
	forms(align.NOUN, "mouse", "mice")
	forms(align.ADJ, "good", "better", "best")
	forms(align.ADJ, "bad", "worse", "worst")
}

// auxiliaries are the verb lemmas that take an aux relation before a main verb.
var auxiliaries = map[string]bool{"be": true, "have": true, "do": true}

// baseVerbs are common verbs recognized in base or regular inflected form.
var baseVerbs = map[string]bool{}

func init() {
	for _, v := range []string{
		"go", "be", "have", "do", "eat", "see", "take", "give", "write", "come", "make", "buy",
		"bring", "think", "teach", "catch", "say", "tell", "get", "find", "know", "leave",
		"feel", "keep", "sleep", "meet", "run", "begin", "speak", "become", "want", "need",
		"like", "love", "live", "work", "play", "study", "walk", "talk", "ask", "try", "use",
		"help", "start", "stop", "finish", "open", "close", "call", "look", "watch", "listen",
		"read", "learn", "visit", "travel", "move", "stay", "wait", "change", "plan", "hope",
		"believe", "agree", "decide", "enjoy", "arrive", "happen", "show", "carry",
		"cry", "marry", "worry", "drop", "shop",
	} {
		baseVerbs[v] = true
	}
}
