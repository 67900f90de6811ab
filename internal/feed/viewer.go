package feed

type viewerKind int

const (
	kindAnonymous viewerKind = iota
	kindGuest
	kindAuthenticated
)

// Viewer is the closed identity variant under which watch history is
// recorded: Authenticated(id), Guest(id) or Anonymous. Selectors match on
// the variant instead of probing for raw ids.
type Viewer struct {
	kind viewerKind
	id   string
}

func Anonymous() Viewer { return Viewer{} }

func Authenticated(id string) Viewer {
	if id == "" {
		return Anonymous()
	}
	return Viewer{kind: kindAuthenticated, id: id}
}

func Guest(id string) Viewer {
	if id == "" {
		return Anonymous()
	}
	return Viewer{kind: kindGuest, id: id}
}

// ResolveViewer derives the viewer from the optional authenticated-user id
// and the optional guest id. An authenticated id wins; the guest id is
// ignored for the request (no history merge at login, see DESIGN.md).
func ResolveViewer(userID, guestID string) Viewer {
	if userID != "" {
		return Authenticated(userID)
	}
	if guestID != "" {
		return Guest(guestID)
	}
	return Anonymous()
}

func (v Viewer) IsAnonymous() bool     { return v.kind == kindAnonymous }
func (v Viewer) IsAuthenticated() bool { return v.kind == kindAuthenticated }
func (v Viewer) ID() string            { return v.id }

// Key is the tracking key watch history is stored under. Authenticated and
// guest keys live in disjoint namespaces so a later merge policy can tell
// them apart.
func (v Viewer) Key() string {
	switch v.kind {
	case kindAuthenticated:
		return "u:" + v.id
	case kindGuest:
		return "g:" + v.id
	default:
		return ""
	}
}
