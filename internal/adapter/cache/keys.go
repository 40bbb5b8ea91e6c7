package cache

import "fmt"

// Keyspace builds namespaced Redis keys. Every key is "<prefix>:<KEY>".
type Keyspace struct {
	prefix string
}

// NewKeyspace returns a keyspace rooted at prefix. An empty prefix yields bare keys.
func NewKeyspace(prefix string) Keyspace {
	return Keyspace{prefix: prefix}
}

func (k Keyspace) key(name string) string {
	if k.prefix == "" {
		return name
	}
	return k.prefix + ":" + name
}

// ClientIDs is the set of client ids known to exist.
func (k Keyspace) ClientIDs() string {
	return k.key("CLIENT_IDS")
}

// ClientData holds the serialized client record.
func (k Keyspace) ClientData(clientID string) string {
	return k.key(fmt.Sprintf("CLIENT_%s_DATA", clientID))
}

// RequestData holds a pending authorization request.
func (k Keyspace) RequestData(requestID string) string {
	return k.key(fmt.Sprintf("REQUEST_ID_%s_REQUEST_DATA", requestID))
}

// CodeUserID holds the user id an authorization code was issued to.
func (k Keyspace) CodeUserID(clientID, code string) string {
	return k.key(fmt.Sprintf("AUTH_CLIENT_%s_CODE_%s_USER_ID", clientID, code))
}

// CodeScopes holds the scope string an authorization code was issued for.
func (k Keyspace) CodeScopes(clientID, code string) string {
	return k.key(fmt.Sprintf("AUTH_CLIENT_%s_CODE_%s_SCOPES", clientID, code))
}
