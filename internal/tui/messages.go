package tui

type wordsLoadedMsg struct {
	words []string
}

type wordErrMsg struct {
	err error
}
