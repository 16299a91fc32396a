package metadata

import "regexp"

var cidRe = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44}.*$)")

func getIpfs(uri string) string {
	if len(uri) >= 7 && uri[:7] == "ipfs://" {
		return uri
	}

	parts := cidRe.FindStringSubmatch(uri)
	if len(parts) == 2 {
		return "ipfs://" + parts[1]
	}

	return ""
}
