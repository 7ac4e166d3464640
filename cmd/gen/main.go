package main

import (
	"inkwell/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.TokenModel{},
		model.APITokenModel{},
		model.BlogModel{},
		model.PortfolioModel{},
		model.PortfolioProjectModel{},
		model.PortfolioSkillModel{},
		model.PortfolioExperienceModel{},
		model.RoomModel{},
		model.RoomMemberModel{},
		model.MessageModel{},
		model.AppModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
