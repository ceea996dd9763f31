package api

func initAPI() []*APIItem {
	return []*APIItem{
		{
			Path:   "/ping",
			Method: APIGet,
			Func:   APIPing,
		},
		{
			Path:   "/signin",
			Method: APIPost,
			Func:   APISignIn,
		},
		{
			Path:   "/signout",
			Method: APIPost,
			SignIn: true,
			Func:   APISignOut,
		},
		{
			Path:   "/csrf",
			Method: APIGet,
			Func:   APIGetCSRFToken,
		},
		{
			Path:   "/access",
			Method: APIGet,
			SignIn: true,
			Func:   APIGetAccess,
		},
		{
			Path:   "/user",
			Method: APIGet,
			Token:  "manage_users",
			Access: "read",
			Func:   APIGetUsers,
		},
		{
			Path:   "/user",
			Method: APIPost,
			Token:  "manage_users",
			Access: "create",
			Func:   APIAddUser,
		},
		{
			Path:   "/user/:id",
			Method: APIGet,
			Token:  "manage_users",
			Access: "read",
			Func:   APIGetUser,
		},
		{
			Path:   "/user/:id",
			Method: APIPut,
			Token:  "manage_users",
			Access: "edit",
			Func:   APIPutUser,
		},
		{
			Path:   "/user/:id",
			Method: APIDelete,
			Token:  "manage_users",
			Access: "delete",
			Func:   APIDeleteUser,
		},
		{
			Path:   "/user/:id/kick",
			Method: APIPost,
			Token:  "manage_users",
			Access: "edit",
			Func:   APIKickUser,
		},
		{
			Path:   "/user/:id/permission",
			Method: APIGet,
			Token:  "manage_users",
			Access: "read",
			Func:   APIGetUserPermission,
		},
		{
			Path:   "/user/:id/permission",
			Method: APIPut,
			Token:  "manage_users",
			Access: "edit",
			Func:   APIPutUserPermission,
		},
		{
			Path:   "/group",
			Method: APIGet,
			Token:  "manage_groups",
			Access: "read",
			Func:   APIGetGroups,
		},
		{
			Path:   "/group",
			Method: APIPost,
			Token:  "manage_groups",
			Access: "create",
			Func:   APIAddGroup,
		},
		{
			Path:   "/group/:id",
			Method: APIGet,
			Token:  "manage_groups",
			Access: "read",
			Func:   APIGetGroup,
		},
		{
			Path:   "/group/:id",
			Method: APIPut,
			Token:  "manage_groups",
			Access: "edit",
			Func:   APIPutGroup,
		},
		{
			Path:   "/group/:id",
			Method: APIDelete,
			Token:  "manage_groups",
			Access: "delete",
			Func:   APIDeleteGroup,
		},
		{
			Path:   "/group/:id/user",
			Method: APIGet,
			Token:  "manage_groups",
			Access: "read",
			Func:   APIGetGroupUsers,
		},
		{
			Path:   "/group/:id/user",
			Method: APIPut,
			Token:  "manage_groups",
			Access: "edit",
			Func:   APIPutGroupUsers,
		},
		{
			Path:   "/group/:id/permission",
			Method: APIGet,
			Token:  "manage_groups",
			Access: "read",
			Func:   APIGetGroupPermission,
		},
		{
			Path:   "/group/:id/permission",
			Method: APIPut,
			Token:  "manage_groups",
			Access: "edit",
			Func:   APIPutGroupPermission,
		},
		{
			Path:   "/token",
			Method: APIGet,
			Token:  "manage_tokens",
			Access: "read",
			Func:   APIGetTokens,
		},
		{
			Path:   "/token",
			Method: APIPost,
			Token:  "manage_tokens",
			Access: "create",
			Func:   APIAddToken,
		},
		{
			Path:   "/token/:id",
			Method: APIGet,
			Token:  "manage_tokens",
			Access: "read",
			Func:   APIGetToken,
		},
		{
			Path:   "/token/:id",
			Method: APIDelete,
			Token:  "manage_tokens",
			Access: "delete",
			Func:   APIDeleteToken,
		},
		{
			Path:   "/post",
			Method: APIGet,
			Token:  "manage_posts",
			Access: "read",
			Func:   APIGetPosts,
		},
		{
			Path:   "/post/timeline",
			Method: APIGet,
			Token:  "manage_posts",
			Access: "read",
			Func:   APIGetPostTimeline,
		},
		{
			Path:   "/post/tags",
			Method: APIGet,
			Token:  "manage_posts",
			Access: "read",
			Func:   APIGetPostTags,
		},
		{
			Path:   "/event",
			Method: APIGet,
			Token:  "manage_users",
			Access: "read",
			Func:   APIGetEvents,
		},
	}
}
