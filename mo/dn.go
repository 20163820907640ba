package mo

import (
	"strings"

	"github.com/pkg/errors"
)

// ParentDN strips the last slash-delimited segment off a distinguished name.
// The parent of a single-segment dn is "".
func ParentDN(dn string) string {
	i := strings.LastIndex(dn, "/")
	if i < 0 {
		return ""
	}
	return dn[:i]
}

// segmentID returns the text after the first hyphen of the nth slash segment
// of dn, e.g. segment 1 of "topology/pod-1/node-101" is "1".
func segmentID(dn string, n int) (string, error) {
	fields := strings.Split(dn, "/")
	if n >= len(fields) {
		return "", errors.Errorf("dn %q: no segment %d", dn, n)
	}
	parts := strings.SplitN(fields[n], "-", 2)
	if len(parts) != 2 {
		return "", errors.Errorf("dn %q: segment %q has no id", dn, fields[n])
	}
	return parts[1], nil
}

// ParseNodeDN parses pod and node ids from a node dn of the form
// topology/pod-<p>/node-<n>[/...].
func ParseNodeDN(dn string) (pod, node string, err error) {
	pod, err = segmentID(dn, 1)
	if err != nil {
		return "", "", errors.Wrap(err, "parse node dn")
	}
	node, err = segmentID(dn, 2)
	if err != nil {
		return "", "", errors.Wrap(err, "parse node dn")
	}
	return pod, node, nil
}

// ParseLinkDN parses pod and link ids from a link dn of the form
// topology/pod-<p>/lnk-<l>[/...].
func ParseLinkDN(dn string) (pod, link string, err error) {
	pod, err = segmentID(dn, 1)
	if err != nil {
		return "", "", errors.Wrap(err, "parse link dn")
	}
	link, err = segmentID(dn, 2)
	if err != nil {
		return "", "", errors.Wrap(err, "parse link dn")
	}
	return pod, link, nil
}
