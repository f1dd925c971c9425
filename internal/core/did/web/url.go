package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mee-pdn/go-mee/pkg/types"
)

// BuildDID 由域名和路径构造 did:web
//
// 域名中的端口分隔符 ':' 编码为 %3A；路径按 '/' 切分，
// 空段被忽略，各段以 ':' 连接。
func BuildDID(domain, path string) (types.DID, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return "", ErrEmptyDomain
	}
	if strings.ContainsAny(domain, "/?#@ ") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}

	parts := []string{strings.ReplaceAll(domain, ":", "%3A")}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		parts = append(parts, url.PathEscape(seg))
	}
	return types.DID("did:web:" + strings.Join(parts, ":")), nil
}

// DocumentURL 返回 did:web 对应的文档 URL
func DocumentURL(did types.DID, scheme string) (string, error) {
	if did.Method() != types.MethodWeb {
		return "", fmt.Errorf("not a did:web: %q", did)
	}
	id := did.MethodSpecificID()
	if id == "" || strings.ContainsAny(id, "/?#") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, id)
	}

	parts := strings.Split(id, ":")
	host, err := url.PathUnescape(parts[0])
	if err != nil || host == "" || strings.ContainsAny(host, "/?#@ ") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, parts[0])
	}

	path := "/.well-known/did.json"
	if len(parts) > 1 {
		segs := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			if p == "" {
				return "", fmt.Errorf("did:web: empty path segment in %q", id)
			}
			segs = append(segs, p)
		}
		path = "/" + strings.Join(segs, "/") + "/did.json"
	}

	u := url.URL{Scheme: scheme, Host: host}
	return u.String() + path, nil
}
