package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCount   = "count"
	actionStart   = "start"
	actionToggle  = "toggle"
	actionMove    = "move"
	actionScore   = "score"
	actionRestart = "restart"
	actionNoop    = "noop"
)

var (
	errBadCallback   = errors.New("malformed callback data")
	errStaleCallback = errors.New("button belongs to another question")
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParams parses exactly n integer parameters.
func (cd callbackData) intParams(n int) ([]int, error) {
	if len(cd.Params) != n {
		return nil, errBadCallback
	}

	out := make([]int, n)
	for i, p := range cd.Params {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errBadCallback
		}
		out[i] = v
	}

	return out, nil
}

// intParam returns the single integer parameter of the callback.
func (cd callbackData) intParam() (int, error) {
	p, err := cd.intParams(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func buildCountCallback(delta int) string {
	return callbackData{Action: actionCount, Params: []string{strconv.Itoa(delta)}}.encode()
}

func buildStartCallback() string {
	return callbackData{Action: actionStart}.encode()
}

// buildToggleCallback builds callback data for flipping an answer. The
// question index ties the button to the message it was rendered on.
func buildToggleCallback(questionIndex, answerIndex int) string {
	return callbackData{
		Action: actionToggle,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(answerIndex)},
	}.encode()
}

// buildMoveCallback builds callback data for moving away from questionIndex.
func buildMoveCallback(questionIndex, delta int) string {
	return callbackData{
		Action: actionMove,
		Params: []string{strconv.Itoa(questionIndex), strconv.Itoa(delta)},
	}.encode()
}

func buildScoreCallback() string {
	return callbackData{Action: actionScore}.encode()
}

func buildRestartCallback() string {
	return callbackData{Action: actionRestart}.encode()
}

func buildNoopCallback() string {
	return actionNoop
}
