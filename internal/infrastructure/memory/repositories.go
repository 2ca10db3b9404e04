package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type userRepository struct {
	st *state
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range r.st.users {
		if existing.Email == user.Email {
			return apperror.ErrEmailTaken
		}
	}
	r.st.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.st.users[user.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	for id, existing := range r.st.users {
		if id != user.ID && existing.Email == user.Email {
			return apperror.ErrEmailTaken
		}
	}
	r.st.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.st.users[id]; !ok {
		return apperror.ErrUserNotFound
	}
	delete(r.st.users, id)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.st.users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}
	return copyUser(user), nil
}

// LockByIDs ничего не делает: единица работы и так выполняется под общим мьютексом.
func (r *userRepository) LockByIDs(ctx context.Context, ids ...uuid.UUID) error {
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	for _, user := range r.st.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, apperror.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int, error) {
	var matched []*entity.User
	for _, user := range r.st.users {
		if filter.PublicOnly && !user.VisibleInDirectory() {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if filter.Availability != "" && user.Availability != filter.Availability {
			continue
		}
		if !user.MatchesQuery(filter.Query) {
			continue
		}
		matched = append(matched, user)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	page := paginate(matched, filter.Limit, filter.Offset)

	result := make([]*entity.User, 0, len(page))
	for _, user := range page {
		result = append(result, copyUser(user))
	}
	return result, total, nil
}

func (r *userRepository) CountByStatus(ctx context.Context) (map[valueobject.UserStatus]int, error) {
	counts := make(map[valueobject.UserStatus]int)
	for _, user := range r.st.users {
		counts[user.Status]++
	}
	return counts, nil
}

type swapRequestRepository struct {
	st *state
}

func (r *swapRequestRepository) Create(ctx context.Context, request *entity.SwapRequest) error {
	r.st.swaps[request.ID] = copySwap(request)
	return nil
}

func (r *swapRequestRepository) Update(ctx context.Context, request *entity.SwapRequest) error {
	if _, ok := r.st.swaps[request.ID]; !ok {
		return apperror.ErrSwapRequestNotFound
	}
	r.st.swaps[request.ID] = copySwap(request)
	return nil
}

func (r *swapRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.st.swaps[id]; !ok {
		return apperror.ErrSwapRequestNotFound
	}
	delete(r.st.swaps, id)
	return nil
}

func (r *swapRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SwapRequest, error) {
	request, ok := r.st.swaps[id]
	if !ok {
		return nil, apperror.ErrSwapRequestNotFound
	}
	return copySwap(request), nil
}

func (r *swapRequestRepository) FindParticipants(ctx context.Context, id uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	request, ok := r.st.swaps[id]
	if !ok {
		return uuid.Nil, uuid.Nil, apperror.ErrSwapRequestNotFound
	}
	return request.RequesterID, request.ProviderID, nil
}

func (r *swapRequestRepository) List(ctx context.Context, filter repository.SwapRequestFilter) ([]*entity.SwapRequest, error) {
	var result []*entity.SwapRequest
	for _, request := range r.st.swaps {
		if filter.RequesterID != nil && request.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.ProviderID != nil && request.ProviderID != *filter.ProviderID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		result = append(result, copySwap(request))
	}
	sortSwapsNewestFirst(result)
	return result, nil
}

func (r *swapRequestRepository) FindPendingByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SwapRequest, error) {
	var result []*entity.SwapRequest
	for _, request := range r.st.swaps {
		if request.IsPending() && request.IsParticipant(userID) {
			result = append(result, copySwap(request))
		}
	}
	sortSwapsNewestFirst(result)
	return result, nil
}

func (r *swapRequestRepository) CountByStatus(ctx context.Context) (map[valueobject.SwapStatus]int, error) {
	counts := make(map[valueobject.SwapStatus]int)
	for _, request := range r.st.swaps {
		counts[request.Status]++
	}
	return counts, nil
}

func sortSwapsNewestFirst(requests []*entity.SwapRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].ID.String() < requests[j].ID.String()
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}

type reportRepository struct {
	st *state
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	r.st.reports[report.ID] = copyReport(report)
	return nil
}

func (r *reportRepository) Update(ctx context.Context, report *entity.Report) error {
	if _, ok := r.st.reports[report.ID]; !ok {
		return apperror.ErrReportNotFound
	}
	r.st.reports[report.ID] = copyReport(report)
	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	report, ok := r.st.reports[id]
	if !ok {
		return nil, apperror.ErrReportNotFound
	}
	return copyReport(report), nil
}

func (r *reportRepository) List(ctx context.Context, status valueobject.ReportStatus) ([]*entity.Report, error) {
	var result []*entity.Report
	for _, report := range r.st.reports {
		if status != "" && report.Status != status {
			continue
		}
		result = append(result, copyReport(report))
	}
	sortReportsNewestFirst(result)
	return result, nil
}

func (r *reportRepository) FindPendingByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	var result []*entity.Report
	for _, report := range r.st.reports {
		if report.IsPending() && (report.ReporterID == userID || report.ReportedUserID == userID) {
			result = append(result, copyReport(report))
		}
	}
	sortReportsNewestFirst(result)
	return result, nil
}

func sortReportsNewestFirst(reports []*entity.Report) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
}

type feedbackRepository struct {
	st *state
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	for _, existing := range r.st.feedback {
		if existing.SwapRequestID == feedback.SwapRequestID && existing.FromUserID == feedback.FromUserID {
			return apperror.New(apperror.ErrCodeConflict, "отзыв по этому обмену уже оставлен")
		}
	}
	r.st.feedback[feedback.ID] = copyFeedback(feedback)
	return nil
}

func (r *feedbackRepository) FindBySwapAndAuthor(ctx context.Context, swapRequestID, fromUserID uuid.UUID) (*entity.Feedback, error) {
	for _, existing := range r.st.feedback {
		if existing.SwapRequestID == swapRequestID && existing.FromUserID == fromUserID {
			return copyFeedback(existing), nil
		}
	}
	return nil, nil
}

func (r *feedbackRepository) ListByRecipient(ctx context.Context, toUserID uuid.UUID) ([]*entity.Feedback, error) {
	var result []*entity.Feedback
	for _, feedback := range r.st.feedback {
		if feedback.ToUserID == toUserID {
			result = append(result, copyFeedback(feedback))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *feedbackRepository) RatingsForUser(ctx context.Context, toUserID uuid.UUID) ([]int, error) {
	var ratings []int
	for _, feedback := range r.st.feedback {
		if feedback.ToUserID == toUserID {
			ratings = append(ratings, feedback.Rating)
		}
	}
	return ratings, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
