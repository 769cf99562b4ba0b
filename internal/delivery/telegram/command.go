package telegram

import (
	"strconv"
	"strings"

	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

// Kind enumerates the callback commands a worker understands
type Kind int

const (
	// KindCheck re-evaluates the join gate for a token
	KindCheck Kind = iota + 1

	// KindRotate advances the join-button window
	KindRotate

	// KindPublish posts a pending upload to one target channel
	KindPublish

	// KindPublishAll posts a pending upload to every target channel
	KindPublishAll

	// KindCancelUpload discards a pending upload session
	KindCancelUpload

	// KindAdmin navigates or acts inside the admin panel
	KindAdmin
)

// AdminAction enumerates the admin panel's navigation targets and actions
type AdminAction string

const (
	AdminPanel     AdminAction = "panel"
	AdminClose     AdminAction = "close"
	AdminBots      AdminAction = "bots"
	AdminBotList   AdminAction = "bot_list"
	AdminBotAdd    AdminAction = "bot_add"
	AdminBotStop   AdminAction = "bot_stop"
	AdminBotRemove AdminAction = "bot_remove"
	AdminFsub      AdminAction = "fsub"
	AdminFsubList  AdminAction = "fsub_list"
	AdminFsubAdd   AdminAction = "fsub_add"
	AdminFsubClear AdminAction = "fsub_clear"
	AdminFsubShowN AdminAction = "fsub_shown"
	AdminPosts     AdminAction = "posts"
	AdminPostList  AdminAction = "post_list"
	AdminPostAdd   AdminAction = "post_add"
	AdminPostClear AdminAction = "post_clear"
)

var adminActions = map[AdminAction]struct{}{
	AdminPanel:     {},
	AdminClose:     {},
	AdminBots:      {},
	AdminBotList:   {},
	AdminBotAdd:    {},
	AdminBotStop:   {},
	AdminBotRemove: {},
	AdminFsub:      {},
	AdminFsubList:  {},
	AdminFsubAdd:   {},
	AdminFsubClear: {},
	AdminFsubShowN: {},
	AdminPosts:     {},
	AdminPostList:  {},
	AdminPostAdd:   {},
	AdminPostClear: {},
}

// Command is one decoded callback. Token carries the content token for gate
// and upload commands, Target the publish target's position in the
// post-channel list, Admin the panel action.
type Command struct {
	Kind   Kind
	Token  string
	Target int
	Admin  AdminAction
}

// Callback data encoding. Tokens never contain ':' so a fixed split is safe.
// Publish targets ride as list indices: callback data is capped at 64 bytes
// by the platform and a full channel ID next to a long token would not fit.
const (
	cbCheck      = "chk"
	cbRotate     = "rot"
	cbPublish    = "post"
	cbPublishAll = "postall"
	cbCancel     = "cancel"
	cbAdmin      = "adm"
)

// CheckData encodes a gate re-check callback
func CheckData(token string) string { return cbCheck + ":" + token }

// RotateData encodes a window-rotation callback
func RotateData(token string) string { return cbRotate + ":" + token }

// PublishData encodes a single-target publish callback
func PublishData(token string, target int) string {
	return cbPublish + ":" + token + ":" + strconv.Itoa(target)
}

// PublishAllData encodes an all-targets publish callback
func PublishAllData(token string) string { return cbPublishAll + ":" + token }

// CancelData encodes an upload-cancel callback
func CancelData(token string) string { return cbCancel + ":" + token }

// AdminData encodes an admin panel callback
func AdminData(action AdminAction) string { return cbAdmin + ":" + string(action) }

// DecodeCallback parses raw callback data into a Command. Unknown prefixes,
// missing fields and malformed target indices yield a ValidationError.
func DecodeCallback(data string) (Command, error) {
	prefix, rest, found := strings.Cut(data, ":")
	if !found || rest == "" {
		return Command{}, pkgerrors.NewValidationError("malformed callback data")
	}

	switch prefix {
	case cbCheck:
		return Command{Kind: KindCheck, Token: rest}, nil

	case cbRotate:
		return Command{Kind: KindRotate, Token: rest}, nil

	case cbPublish:
		token, idxPart, ok := strings.Cut(rest, ":")
		if !ok || token == "" || idxPart == "" {
			return Command{}, pkgerrors.NewValidationError("malformed publish callback")
		}
		target, err := strconv.Atoi(idxPart)
		if err != nil || target < 0 {
			return Command{}, pkgerrors.NewValidationError("malformed publish target index")
		}
		return Command{Kind: KindPublish, Token: token, Target: target}, nil

	case cbPublishAll:
		return Command{Kind: KindPublishAll, Token: rest}, nil

	case cbCancel:
		return Command{Kind: KindCancelUpload, Token: rest}, nil

	case cbAdmin:
		action := AdminAction(rest)
		if _, ok := adminActions[action]; !ok {
			return Command{}, pkgerrors.NewValidationError("unknown admin action")
		}
		return Command{Kind: KindAdmin, Admin: action}, nil
	}

	return Command{}, pkgerrors.NewValidationError("unknown callback prefix")
}
