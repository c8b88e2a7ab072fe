// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the caller resolved by the authentication gate.
//
// It is a snapshot of the account taken when the request was authenticated,
// plus the raw bearer token the request carried. Downstream code receives it
// from the request context and passes UserID explicitly into services.
type Identity struct {
	UserID   string
	Email    string
	Username string
	Token    string
}
