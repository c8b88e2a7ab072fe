// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import "context"

type callerKey struct{}

func withCallerRef(ctx context.Context, ref *callerRef) context.Context {
	return context.WithValue(ctx, callerKey{}, ref)
}

// recordCaller notes the authenticated user for the access log, if one is listening.
func recordCaller(ctx context.Context, userID string) {
	if ref, ok := ctx.Value(callerKey{}).(*callerRef); ok {
		ref.userID = userID
	}
}
