package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

type UserUsecase struct {
	tx         domain.TxManager
	users      domain.UserGateway
	hasher     domain.Hasher
	tokens     domain.TokenIssuer
	tokenStore domain.TokenStore
	mailer     domain.Mailer
	log        zerolog.Logger
}

func NewUserUsecase(
	tx domain.TxManager,
	users domain.UserGateway,
	hasher domain.Hasher,
	tokens domain.TokenIssuer,
	tokenStore domain.TokenStore,
	mailer domain.Mailer,
	log zerolog.Logger,
) *UserUsecase {
	return &UserUsecase{
		tx:         tx,
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		tokenStore: tokenStore,
		mailer:     mailer,
		log:        log,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

// Register hashes before the transaction (nothing to compensate if
// hashing fails) and sends the welcome mail only after commit; a mail
// failure never fails the registration.
func (uc *UserUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, domain.NewValidation("password")
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	created, err := uc.users.Create(sess.Context(), &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
	})
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendWelcomeEmail(created.Email, created.Name); err != nil {
			uc.log.Warn().Err(err).Str("email", created.Email).Msg("welcome email failed")
		}
	}
	return created, nil
}

func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, domain.NewInvalidField("credentials", "Invalid email or password")
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return nil, nil, domain.NewInvalidField("credentials", "Invalid email or password")
	}

	access, refresh, err := uc.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, nil, err
	}
	if err := uc.tokenStore.SaveRefresh(ctx, user.ID.Hex(), refresh); err != nil {
		return nil, nil, err
	}
	return user, &TokenPair{Access: access, Refresh: refresh}, nil
}

func (uc *UserUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if _, err := uc.tokens.ValidateRefreshToken(refreshToken); err != nil {
		return nil, domain.NewInvalidField("refreshToken", "Invalid or expired refresh token")
	}
	userID, err := uc.tokenStore.CheckRefresh(ctx, refreshToken)
	if err != nil {
		return nil, domain.NewInvalidField("refreshToken", "Invalid or expired refresh token")
	}

	access, refresh, err := uc.tokens.Generate(userID)
	if err != nil {
		return nil, err
	}
	if err := uc.tokenStore.SaveRefresh(ctx, userID, refresh); err != nil {
		return nil, err
	}
	if err := uc.tokenStore.DropRefresh(ctx, refreshToken); err != nil {
		uc.log.Warn().Err(err).Msg("drop old refresh token failed")
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (uc *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenStore.DropRefresh(ctx, refreshToken)
}

func (uc *UserUsecase) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UserUsecase) UpdateProgress(ctx context.Context, userID, courseID primitive.ObjectID, percent int) error {
	if percent < 0 || percent > 100 {
		return domain.NewInvalidField("progress", "Progress must be between 0 and 100")
	}

	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	if err := uc.users.UpdateProgress(sess.Context(), userID, courseID, percent); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	return sess.Commit()
}

func (uc *UserUsecase) WishlistAdd(ctx context.Context, userID, courseID primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	if err := uc.users.WishlistAdd(sess.Context(), userID, courseID); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	return sess.Commit()
}

func (uc *UserUsecase) WishlistRemove(ctx context.Context, userID, courseID primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	if err := uc.users.WishlistRemove(sess.Context(), userID, courseID); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	return sess.Commit()
}
