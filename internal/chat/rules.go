package chat

import "regexp"

// Rule maps an intent pattern to its canned replies. Rules are checked in
// order and the first match wins, so narrower intents must come first.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replies []string
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name:    "greeting",
			Pattern: regexp.MustCompile(`(?i)\b(hi|hello|hey|hiya|howdy)\b`),
			Replies: []string{"Hi!", "Hello!", "Hey there!"},
		},
		{
			Name:    "how-are-you",
			Pattern: regexp.MustCompile(`(?i)\bhow\s+are\s+you\b`),
			Replies: []string{"Doing great, thanks for asking!", "All good here. How about you?"},
		},
		{
			Name:    "feeling-fine",
			Pattern: regexp.MustCompile(`(?i)\b(i'?m|i\s+am)\s+(fine|good|great|ok|okay)\b`),
			Replies: []string{"Glad to hear it!", "That's great!"},
		},
		{
			Name:    "thanks",
			Pattern: regexp.MustCompile(`(?i)\b(thanks|thank\s+you|thx)\b`),
			Replies: []string{"You're welcome!", "Any time!"},
		},
		{
			Name:    "farewell",
			Pattern: regexp.MustCompile(`(?i)\b(bye|goodbye|see\s+ya|see\s+you|later)\b`),
			Replies: []string{"See you around!", "Take care!"},
		},
		{
			Name:    "help",
			Pattern: regexp.MustCompile(`(?i)\b(help|what\s+can\s+you\s+do)\b`),
			Replies: []string{"Ask me about anything and I'll look it up for you."},
		},
	}
}

// matchRule returns the first rule whose pattern matches the input, or nil.
func matchRule(rules []Rule, input string) *Rule {
	for i := range rules {
		if rules[i].Pattern.MatchString(input) {
			return &rules[i]
		}
	}
	return nil
}
