// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Client Messages

const (
	MsgPrincipalNotFound = "Utilisateur non trouvé"
	MsgInvalidSecret     = "Mot de passe incorrect"
	MsgInvalidInput      = "Email, mot de passe et rôle valides requis"
	MsgEmailTaken        = "Un compte existe déjà avec cet email"
	MsgLoggedOut         = "Déconnexion réussie"
)

// NameMaxLength bounds the registration name.
const NameMaxLength = 100
