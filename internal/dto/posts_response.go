package dto

import "github.com/hyeonKii/SocialService/internal/model"

type GetPost struct {
	Post    model.Post `json:"post"`
	IsLiked bool       `json:"is_liked"`
}

type FollowStatus struct {
	IsFollowing bool `json:"is_following"`
}
